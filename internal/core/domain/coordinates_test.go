package domain_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/samirrijal/geofences/internal/core/domain"
)

func decodeWithNumbers(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func TestEncodeCoordinates_RoundTrip(t *testing.T) {
	cases := []string{
		`[[1.0,2.0],[3.0,4.0]]`,
		`[[[-6.2088, 106.8456], [-6.21, 106.85], [-6.2088, 106.8456]]]`,
		`[1e-7, 123456789012345678901234567890, -0.5]`,
		`{"type":"Polygon","rings":[[0,0],[0,1],[1,1]]}`,
		`[]`,
		`null`,
		`[[], [[]], [[[42]]]]`,
	}

	for _, in := range cases {
		text, err := domain.EncodeCoordinates([]byte(in))
		if err != nil {
			t.Fatalf("encode %s: %v", in, err)
		}

		got, err := domain.DecodeCoordinates(text)
		if err != nil {
			t.Fatalf("decode %s: %v", text, err)
		}

		want := decodeWithNumbers(t, in)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip of %s: got %#v, want %#v", in, got, want)
		}
	}
}

func TestEncodeCoordinates_KeepsNumberText(t *testing.T) {
	text, err := domain.EncodeCoordinates([]byte(" [ [1.0, 2.0] ,\n [3.0,4.0] ] "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `[[1.0,2.0],[3.0,4.0]]` {
		t.Errorf("expected compact text with original numbers, got %s", text)
	}
}

func TestEncodeCoordinates_Absent(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("  ")} {
		text, err := domain.EncodeCoordinates(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != domain.NullCoordinates {
			t.Errorf("expected %q, got %q", domain.NullCoordinates, text)
		}
	}

	v, err := domain.DecodeCoordinates(domain.NullCoordinates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil, got %#v", v)
	}
}

func TestEncodeCoordinates_Invalid(t *testing.T) {
	_, err := domain.EncodeCoordinates([]byte(`[[1.0,2.0]`))
	if err == nil {
		t.Fatal("expected error for truncated coordinates")
	}
	var malformed *domain.MalformedInputError
	if !errors.As(err, &malformed) {
		t.Errorf("expected MalformedInputError, got %T", err)
	}
}

func TestDecodeCoordinates_Invalid(t *testing.T) {
	for _, text := range []string{"", "[1,2", "[1] [2]"} {
		if _, err := domain.DecodeCoordinates(text); err == nil {
			t.Errorf("expected error decoding %q", text)
		}
	}
}

func TestDecodeCoordinates_StructuredValues(t *testing.T) {
	v, err := domain.DecodeCoordinates(`[[1.0,2.0],[3.0,4.0]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outer, ok := v.([]any)
	if !ok || len(outer) != 2 {
		t.Fatalf("expected 2 points, got %#v", v)
	}
	first, ok := outer[0].([]any)
	if !ok || len(first) != 2 {
		t.Fatalf("expected pair, got %#v", outer[0])
	}
	if n, ok := first[0].(json.Number); !ok || n.String() != "1.0" {
		t.Errorf("expected json.Number 1.0, got %#v", first[0])
	}
	if f, _ := first[1].(json.Number).Float64(); f != 2.0 {
		t.Errorf("expected 2.0, got %v", f)
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&domain.StorageError{Op: "insert", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("expected StorageError to unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "insert") {
		t.Errorf("expected op in message, got %q", err.Error())
	}
}
