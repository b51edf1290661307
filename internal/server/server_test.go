// internal/server/server_test.go - Unit tests for tile path parsing
package server

import "testing"

func TestParseCoord(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint32
		wantErr bool
	}{
		{"plain", "22", 22, false},
		{"pbf suffix", "22.pbf", 22, false},
		{"mvt suffix", "22.mvt", 22, false},
		{"zero", "0", 0, false},
		{"negative", "-1", 0, true},
		{"garbage", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCoord(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCoord(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseCoord(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
