package huek

import (
	"errors"
	"math"
	"testing"
)

func TestCheckConsistency(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		shared  map[SharedCategory]float64
		wantErr bool
	}{
		{"exact", []float64{60, 0}, map[SharedCategory]float64{Waterbody: 40}, false},
		{"within tolerance", []float64{59.95, 0}, map[SharedCategory]float64{Waterbody: 40}, false},
		{"below", []float64{59.8, 0}, map[SharedCategory]float64{Waterbody: 40}, true},
		{"above", []float64{60, 0.2}, map[SharedCategory]float64{Waterbody: 40}, true},
		{"shared only", nil, map[SharedCategory]float64{Waterbody: 70, NoData: 30}, false},
		{"NaN", []float64{math.NaN()}, nil, true},
		{"empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := CategoryRow{CatchmentID: "c", Attribute: "kf", Values: tt.values, Shared: tt.shared}
			err := CheckConsistency(row, DefaultTolerance)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckConsistency() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ce *ConsistencyError
				if !errors.As(err, &ce) || ce.Attribute != "kf" || ce.CatchmentID != "c" {
					t.Errorf("CheckConsistency() error = %#v", err)
				}
			}
		})
	}
}
