package entities

import (
	"reflect"
	"testing"
)

func TestLocationSelectorNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		in       LocationSelector
		want     LocationSelector
		ok       bool
		conflict bool
	}{
		{
			name: "district only",
			in:   LocationSelector{DistrictID: 188},
			want: LocationSelector{DistrictID: 188},
			ok:   true,
		},
		{
			name: "pincodes only",
			in:   LocationSelector{Pincodes: []string{"110001", "110002"}},
			want: LocationSelector{Pincodes: []string{"110001", "110002"}},
			ok:   true,
		},
		{
			name:     "both set is a conflict",
			in:       LocationSelector{DistrictID: 188, Pincodes: []string{"110001"}},
			conflict: true,
		},
		{
			name: "invalid pincodes fall back to district",
			in:   LocationSelector{DistrictID: 188, Pincodes: []string{"12345", "abcdef", "1100011"}},
			want: LocationSelector{DistrictID: 188},
			ok:   true,
		},
		{
			name: "mixed validity keeps only valid pincodes",
			in:   LocationSelector{Pincodes: []string{"110001", "9999"}},
			want: LocationSelector{Pincodes: []string{"110001"}},
			ok:   true,
		},
		{
			name: "nothing usable",
			in:   LocationSelector{Pincodes: []string{"bad"}},
		},
		{
			name: "empty selector",
			in:   LocationSelector{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok, conflict := tt.in.Normalize()
			if ok != tt.ok || conflict != tt.conflict {
				t.Fatalf("Normalize() ok=%v conflict=%v, want ok=%v conflict=%v", ok, conflict, tt.ok, tt.conflict)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
