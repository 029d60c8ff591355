package selector

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTime(t *testing.T) {
	available := []float64{1, 2.5, 10}

	if err := ValidateTime(2.5, available); err != nil {
		t.Errorf("ValidateTime(2.5) error = %v", err)
	}

	tests := []float64{0, 2.5000001, 11, -1}
	for _, requested := range tests {
		err := ValidateTime(requested, available)
		var rej *Rejection
		if !errors.As(err, &rej) {
			t.Fatalf("ValidateTime(%v) error = %v, want *Rejection", requested, err)
		}
		if len(rej.Available) != len(available) {
			t.Fatalf("Available = %v, want %v", rej.Available, available)
		}
		for i := range available {
			if rej.Available[i] != available[i] {
				t.Errorf("Available[%d] = %v, want %v", i, rej.Available[i], available[i])
			}
		}
		if !strings.Contains(rej.Error(), "1, 2.5, 10") {
			t.Errorf("Error() = %q, should list available totims", rej.Error())
		}
	}
}

func TestValidateTimeEmptyList(t *testing.T) {
	err := ValidateTime(1, nil)
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected rejection, got %v", err)
	}
	got, ok := rej.Details()["available"].([]float64)
	if !ok || len(got) != 0 {
		t.Errorf("Details() available = %v, want empty list", rej.Details()["available"])
	}
}

func TestValidateExtents(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(int, int) error
		requested int
		extent    int
		wantErr   bool
	}{
		{"layer first", ValidateLayer, 0, 3, false},
		{"layer last", ValidateLayer, 2, 3, false},
		{"layer equal extent", ValidateLayer, 3, 3, true},
		{"layer negative", ValidateLayer, -1, 3, true},
		{"substance in range", ValidateSubstance, 1, 2, false},
		{"substance out of range", ValidateSubstance, 2, 2, true},
		{"row in range", ValidateRow, 9, 10, false},
		{"row out of range", ValidateRow, 10, 10, true},
		{"column zero extent", ValidateColumn, 0, 0, true},
		{"column in range", ValidateColumn, 4, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.requested, tt.extent)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var rej *Rejection
			if !errors.As(err, &rej) {
				t.Fatalf("error %T is not *Rejection", err)
			}
			if rej.Extent != tt.extent {
				t.Errorf("Extent = %d, want %d", rej.Extent, tt.extent)
			}
			if rej.Details()["extent"] != tt.extent {
				t.Errorf("Details() = %v", rej.Details())
			}
		})
	}
}

func TestValidateIndex(t *testing.T) {
	if err := ValidateIndex(0, 3); err != nil {
		t.Errorf("ValidateIndex(0, 3) error = %v", err)
	}
	if err := ValidateIndex(2, 3); err != nil {
		t.Errorf("ValidateIndex(2, 3) error = %v", err)
	}

	err := ValidateIndex(3, 3)
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("ValidateIndex(3, 3) error = %v, want *Rejection", err)
	}
	if rej.Range != [2]int{0, 2} {
		t.Errorf("Range = %v, want [0 2]", rej.Range)
	}
	if !strings.Contains(rej.Error(), "between: 0 and 2") {
		t.Errorf("Error() = %q", rej.Error())
	}

	if err := ValidateIndex(-1, 3); err == nil {
		t.Errorf("ValidateIndex(-1, 3) expected rejection")
	}
}

func TestValidateType(t *testing.T) {
	if err := ValidateType(TypeHead, TypeHead, TypeDrawdown); err != nil {
		t.Errorf("ValidateType(head) error = %v", err)
	}

	err := ValidateType(TypeBudget, TypeHead, TypeDrawdown)
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("ValidateType(budget) error = %v, want *Rejection", err)
	}
	if !strings.Contains(rej.Error(), "head, drawdown") {
		t.Errorf("Error() = %q, should list permitted types", rej.Error())
	}
	permitted, _ := rej.Details()["permitted"].([]string)
	if len(permitted) != 2 {
		t.Errorf("Details() permitted = %v", permitted)
	}
}
