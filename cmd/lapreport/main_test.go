package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDrivers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"default set", "VER,NOR,LEC,HAM", []string{"VER", "NOR", "LEC", "HAM"}},
		{"whitespace trimmed", " VER , LEC ", []string{"VER", "LEC"}},
		{"empty segments dropped", "VER,,LEC,", []string{"VER", "LEC"}},
		{"single driver", "TSU", []string{"TSU"}},
		{"empty input", "", nil},
		{"only separators", ",,,", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, parseDrivers(tc.input)); diff != "" {
				t.Errorf("parseDrivers(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}
