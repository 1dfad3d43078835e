package selection

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single well", "A1", []string{"A1"}},
		{"lowercase and spaces", " a1 , b2 ", []string{"A1", "B2"}},
		{"rectangular range row-major", "A1-B2", []string{"A1", "A2", "B1", "B2"}},
		{"reversed endpoints", "B2-A1", []string{"A1", "A2", "B1", "B2"}},
		{"duplicates first-seen order", "A1,A1,B1", []string{"A1", "B1"}},
		{"range overlapping single", "A1-A3,A2,A4", []string{"A1", "A2", "A3", "A4"}},
		{"full row", "C1-C12", []string{
			"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10", "C11", "C12"}},
		{"single column range", "A5-D5", []string{"A5", "B5", "C5", "D5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, 8, 12)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"row beyond plate", "Z1", ErrOutOfBounds},
		{"column beyond plate", "A13", ErrOutOfBounds},
		{"range endpoint out of bounds", "A1-J4", ErrOutOfBounds},
		{"garbage token", "1A", ErrBadWellFormat},
		{"missing column", "A", ErrBadWellFormat},
		{"empty part", "A1,,B2", ErrBadWellFormat},
		{"dangling range", "A1-", ErrBadWellFormat},
		{"empty input", "", ErrBadWellFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, 8, 12)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

// The error message cites the offending fragment so the UI can point
// at the bad token.
func TestParseErrorCitesPart(t *testing.T) {
	_, err := Parse("A1,Q7", 8, 12)
	if err == nil {
		t.Fatal("expected error")
	}
	if want := `"Q7"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not cite offending part %s", err, want)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"colon separator", "A1:B2", []string{"A1", "A2", "B1", "B2"}},
		{"dash separator", "A1-B2", []string{"A1", "A2", "B1", "B2"}},
		{"spaces around endpoints", " a1 : b2 ", []string{"A1", "A2", "B1", "B2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input, 8, 12)
			if err != nil {
				t.Fatalf("ParseRange(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRange(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}

	if _, err := ParseRange("A1", 8, 12); !errors.Is(err, ErrBadWellFormat) {
		t.Errorf("ParseRange without separator: error = %v, want ErrBadWellFormat", err)
	}
}
