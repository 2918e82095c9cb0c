package cleaner

import (
	"strings"
	"testing"
)

func TestResultValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		wantErr bool
	}{
		{
			name:   "zero value",
			result: Result{},
		},
		{
			name: "consistent counters",
			result: Result{
				BlocksParsed:      10,
				RecordsKept:       6,
				RecordsNoPhone:    3,
				DuplicatesRemoved: 1,
				FieldsRemoved:     12,
			},
		},
		{
			name: "unaccounted records",
			result: Result{
				BlocksParsed: 10,
				RecordsKept:  6,
			},
			wantErr: true,
		},
		{
			name: "negative counter",
			result: Result{
				BlocksParsed: -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResultString(t *testing.T) {
	r := Result{BlocksParsed: 5, RecordsKept: 3, RecordsNoPhone: 1, DuplicatesRemoved: 1}
	s := r.String()
	if !strings.Contains(s, "3/5") {
		t.Errorf("String() = %q, want kept/parsed ratio", s)
	}
}
