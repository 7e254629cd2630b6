package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/geofences/internal/core/domain"
)

// buildSchema creates the read-only GraphQL schema over the geofence store.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geofenceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Geofence",
		Fields: graphql.Fields{
			"fence_id":    &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"notes":       &graphql.Field{Type: graphql.String},
			"created_at":  &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: graphql.String, Description: "Coordinates as stored JSON text"},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"geofences": &graphql.Field{
				Type:        graphql.NewList(geofenceType),
				Description: "List every stored geofence",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					records, err := deps.Geofences.List(p.Context)
					if err != nil {
						return nil, err
					}
					result := make([]map[string]interface{}, 0, len(records))
					for _, r := range records {
						result = append(result, recordFields(r))
					}
					return result, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func recordFields(r domain.GeofenceRecord) map[string]interface{} {
	m := map[string]interface{}{}
	set := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		} else {
			m[key] = nil
		}
	}
	set("fence_id", r.FenceID)
	set("name", r.Name)
	set("notes", r.Notes)
	set("created_at", r.CreatedAt)
	set("coordinates", r.Coordinates)
	return m
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
