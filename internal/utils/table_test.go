package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	RenderTable(&out, []string{"name", "age"}, [][]string{
		{"Asha", "34"},
		{"Ravi", "29"},
	})
	got := out.String()
	for _, want := range []string{"idx", "name", "age", "1", "Asha", "2", "Ravi"} {
		if !strings.Contains(got, want) {
			t.Fatalf("table missing %q:\n%s", want, got)
		}
	}
}

func TestParseIndexList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		n       int
		want    []int
		wantErr bool
	}{
		{"single", "1", 3, []int{0}, false},
		{"multiple", "1,3", 3, []int{0, 2}, false},
		{"spaces", " 2 , 3 ", 3, []int{1, 2}, false},
		{"out of range", "4", 3, nil, true},
		{"zero", "0", 3, nil, true},
		{"garbage", "a,b", 3, nil, true},
		{"empty", "", 3, nil, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseIndexList(tt.input, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIndexList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseIndexList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
