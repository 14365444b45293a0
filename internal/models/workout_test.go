// ABOUTME: Tests for date normalization.
// ABOUTME: Timestamps truncate to their date part; malformed dates are rejected.
package models

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain date", "2026-08-30", "2026-08-30", false},
		{"rfc3339 timestamp", "2026-08-30T18:45:00Z", "2026-08-30", false},
		{"timestamp with offset", "2026-08-30T06:00:00+02:00", "2026-08-30", false},
		{"empty", "", "", true},
		{"garbage", "not-a-date", "", true},
		{"month out of range", "2026-13-01", "", true},
		{"too short", "2026-08", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeDate(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
