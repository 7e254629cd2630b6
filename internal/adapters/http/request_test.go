package http

import (
	"errors"
	"testing"

	"github.com/samirrijal/geofences/internal/core/domain"
)

func TestParseCreateRequest_Full(t *testing.T) {
	in, err := parseCreateRequest([]byte(`{"fence_id":"f1","properties":{"name":"Yard","notes":"back"},"created_at":"2024-01-01T00:00:00Z","shape":{"coordinates":[[1.0, 2.0],[3.0,4.0]]}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *in.FenceID != "f1" || *in.Name != "Yard" || *in.Notes != "back" || *in.CreatedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("unexpected fields %+v", in)
	}
	if string(in.Coordinates) != `[[1.0, 2.0],[3.0,4.0]]` {
		t.Errorf("expected raw coordinates, got %s", in.Coordinates)
	}
}

func TestParseCreateRequest_NullsAreAbsent(t *testing.T) {
	in, err := parseCreateRequest([]byte(`{"fence_id":null,"properties":null,"shape":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.FenceID != nil || in.Name != nil || in.Notes != nil || in.Coordinates != nil {
		t.Errorf("expected all fields absent, got %+v", in)
	}
}

func TestParseCreateRequest_ExtraFieldsIgnored(t *testing.T) {
	in, err := parseCreateRequest([]byte(`{"fence_id":"f1","colour":"red","shape":{"type":"Polygon","coordinates":{"ring":[1,2]}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(in.Coordinates) != `{"ring":[1,2]}` {
		t.Errorf("unexpected coordinates %s", in.Coordinates)
	}
}

func TestParseCreateRequest_Malformed(t *testing.T) {
	for _, body := range []string{
		``,
		`nope`,
		`"text"`,
		`{"created_at":1700000000}`,
		`{"properties":[1]}`,
	} {
		_, err := parseCreateRequest([]byte(body))
		var malformed *domain.MalformedInputError
		if !errors.As(err, &malformed) {
			t.Errorf("body %q: expected MalformedInputError, got %v", body, err)
		}
	}
}

func TestParseCreateRequest_DuplicateKeys(t *testing.T) {
	for _, body := range []string{
		`{"fence_id":"a","fence_id":"b"}`,
		`{"properties":{"name":"x"},"properties":{"name":"y"}}`,
		`{"properties":{"name":"x","name":"y"}}`,
		`{"shape":{"coordinates":[1],"coordinates":[2]}}`,
	} {
		_, err := parseCreateRequest([]byte(body))
		var malformed *domain.MalformedInputError
		if !errors.As(err, &malformed) {
			t.Errorf("body %s: expected MalformedInputError, got %v", body, err)
		}
	}
}

func TestParseCreateRequest_InvalidUTF8(t *testing.T) {
	for _, body := range [][]byte{
		[]byte("{\"fence_id\":\"\xff\xfe\"}"),
		[]byte("{\"shape\":{\"coordinates\":[\"\xc3\x28\"]}}"),
	} {
		_, err := parseCreateRequest(body)
		var malformed *domain.MalformedInputError
		if !errors.As(err, &malformed) {
			t.Errorf("body %q: expected MalformedInputError, got %v", body, err)
		}
	}
}

func TestParseCreateRequest_MultibyteKept(t *testing.T) {
	in, err := parseCreateRequest([]byte(`{"fence_id":"zóna-1","properties":{"name":"Jardín"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *in.FenceID != "zóna-1" || *in.Name != "Jardín" {
		t.Errorf("unexpected fields %q %q", *in.FenceID, *in.Name)
	}
}
