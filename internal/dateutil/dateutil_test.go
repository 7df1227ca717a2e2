package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestGoLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		layout  string
		want    string
		wantErr bool
	}{
		{"iso", "YYYY-MM-DD", "2006-01-02", false},
		{"short year", "DD.MM.YY", "02.01.06", false},
		{"month names", "MMMM or MMM", "January or Jan", false},
		{"unpadded", "M/D", "1/2", false},
		{"bracket literal", "[Due] DD/MM", "Due 02/01", false},
		{"bracket protects tokens", "[YYYY]", "YYYY", false},
		{"plain text kept", "week of DD", "week of 02", false},
		{"empty", "", "", true},
		{"unclosed bracket", "[Due DD", "", true},
		{"too long", "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := GoLayout(tt.layout)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("GoLayout(%q) error = %v, want ErrInvalidDateFormat", tt.layout, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GoLayout(%q) unexpected error: %v", tt.layout, err)
			}
			if got != tt.want {
				t.Errorf("GoLayout(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"empty passes through", "", "", false},
		{"literal passes through", "Spring term", "Spring term", false},
		{"auto", "auto", "2026-03-07", false},
		{"auto is case insensitive", "AUTO", "2026-03-07", false},
		{"custom layout", "auto:DD/MM/YYYY", "07/03/2026", false},
		{"preset", "auto:long", "March 7, 2026", false},
		{"preset case insensitive", "auto:US", "03/07/2026", false},
		{"missing colon", "automatic", "", true},
		{"empty layout", "auto:", "", true},
		{"bad layout", "auto:[DD", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("Resolve(%q) error = %v, want ErrInvalidDateFormat", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
