package http

import (
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/samirrijal/geofences/internal/core/domain"
)

// parseCreateRequest extracts a NewGeofence from a create payload of the form
// {fence_id, properties:{name, notes}, created_at, shape:{coordinates}}.
// Every field is optional and null counts as absent. shape.coordinates is kept
// as the exact raw JSON the caller sent. The body must be valid UTF-8, and
// duplicate keys in the top-level, properties and shape objects are rejected.
func parseCreateRequest(body []byte) (*domain.NewGeofence, error) {
	if !utf8.Valid(body) {
		return nil, &domain.MalformedInputError{Reason: "request body is not valid UTF-8"}
	}
	if !gjson.ValidBytes(body) {
		return nil, &domain.MalformedInputError{Reason: "request body is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &domain.MalformedInputError{Reason: "request body must be a JSON object"}
	}

	if err := uniqueKeys(root, "request body"); err != nil {
		return nil, err
	}
	for _, key := range []string{"properties", "shape"} {
		if err := optionalObject(root, key); err != nil {
			return nil, err
		}
		if err := uniqueKeys(root.Get(key), key); err != nil {
			return nil, err
		}
	}

	in := &domain.NewGeofence{}
	fields := []struct {
		path string
		dst  **string
	}{
		{"fence_id", &in.FenceID},
		{"properties.name", &in.Name},
		{"properties.notes", &in.Notes},
		{"created_at", &in.CreatedAt},
	}
	for _, f := range fields {
		v, err := optionalString(root, f.path)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if coords := root.Get("shape.coordinates"); coords.Exists() {
		in.Coordinates = []byte(coords.Raw)
	}
	return in, nil
}

func optionalObject(root gjson.Result, path string) error {
	v := root.Get(path)
	if !v.Exists() || v.Type == gjson.Null || v.IsObject() {
		return nil
	}
	return &domain.MalformedInputError{Reason: fmt.Sprintf("%s must be an object", path)}
}

func optionalString(root gjson.Result, path string) (*string, error) {
	v := root.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if v.Type != gjson.String {
		return nil, &domain.MalformedInputError{Reason: fmt.Sprintf("%s must be a string", path)}
	}
	s := v.String()
	return &s, nil
}

// uniqueKeys rejects an object that names the same key twice. Non-objects pass.
func uniqueKeys(obj gjson.Result, where string) error {
	if !obj.IsObject() {
		return nil
	}
	seen := make(map[string]struct{})
	var dup string
	obj.ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if _, ok := seen[k]; ok {
			dup = k
			return false
		}
		seen[k] = struct{}{}
		return true
	})
	if dup != "" {
		return &domain.MalformedInputError{Reason: fmt.Sprintf("%s: duplicate key %q", where, dup)}
	}
	return nil
}
