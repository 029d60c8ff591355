package validator

import (
	"strings"
	"testing"
)

type inner struct {
	Name string `json:"name" validate:"required"`
}

type sample struct {
	ID    string `json:"calculation_id" validate:"required,max=8,pathsegment"`
	Inner inner  `json:"data"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		in     *sample
		fields []string
	}{
		{"valid", &sample{ID: "sim-001", Inner: inner{Name: "x"}}, nil},
		{"missing id", &sample{Inner: inner{Name: "x"}}, []string{"calculation_id"}},
		{"too long", &sample{ID: "abcdefghij", Inner: inner{Name: "x"}}, []string{"calculation_id"}},
		{"path separator", &sample{ID: "a/b", Inner: inner{Name: "x"}}, []string{"calculation_id"}},
		{"dot dot", &sample{ID: "..", Inner: inner{Name: "x"}}, []string{"calculation_id"}},
		{"nested", &sample{ID: "ok"}, []string{"data.name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.in)
			if len(errs) != len(tt.fields) {
				t.Fatalf("ValidateStruct() = %v, want fields %v", errs, tt.fields)
			}
			for _, f := range tt.fields {
				msg, ok := errs[f]
				if !ok {
					t.Errorf("missing error for %s in %v", f, errs)
					continue
				}
				if !strings.Contains(msg, f) {
					t.Errorf("message %q does not name field %s", msg, f)
				}
			}
		})
	}
}
