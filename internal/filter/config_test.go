package filter

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() does not validate: %v", err)
	}
	if cfg.PhonePrefix != "TEL" {
		t.Errorf("PhonePrefix = %q, want TEL", cfg.PhonePrefix)
	}
	want := []string{"PHOTO", "NOTE", "ADR", "ORG"}
	if len(cfg.DropPrefixes) != len(want) {
		t.Fatalf("DropPrefixes = %v, want %v", cfg.DropPrefixes, want)
	}
	for i := range want {
		if cfg.DropPrefixes[i] != want[i] {
			t.Errorf("DropPrefixes[%d] = %q, want %q", i, cfg.DropPrefixes[i], want[i])
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "empty phone prefix",
			cfg:     Config{DropPrefixes: []string{"PHOTO"}, PhonePrefix: ""},
			wantErr: true,
		},
		{
			name:    "whitespace phone prefix",
			cfg:     Config{DropPrefixes: []string{"PHOTO"}, PhonePrefix: "  "},
			wantErr: true,
		},
		{
			name:    "colon in phone prefix",
			cfg:     Config{DropPrefixes: []string{"PHOTO"}, PhonePrefix: "TEL:"},
			wantErr: true,
		},
		{
			name:    "blank drop prefix",
			cfg:     Config{DropPrefixes: []string{"PHOTO", " "}, PhonePrefix: "TEL"},
			wantErr: true,
		},
		{
			name:    "colon in drop prefix",
			cfg:     Config{DropPrefixes: []string{"ORG:"}, PhonePrefix: "TEL"},
			wantErr: true,
		},
		{
			name:    "drop prefix shadows phone prefix",
			cfg:     Config{DropPrefixes: []string{"T"}, PhonePrefix: "TEL"},
			wantErr: true,
		},
		{
			name:    "drop prefix extends phone prefix",
			cfg:     Config{DropPrefixes: []string{"TELEX"}, PhonePrefix: "TEL"},
			wantErr: true,
		},
		{
			name:    "drop prefix equals phone prefix case-insensitively",
			cfg:     Config{DropPrefixes: []string{"tel"}, PhonePrefix: "TEL"},
			wantErr: true,
		},
		{
			name:    "dotted group token is valid",
			cfg:     Config{DropPrefixes: []string{"item1.URL", "item1.X-ABLabel"}, PhonePrefix: "TEL"},
			wantErr: false,
		},
		{
			name:    "empty drop set is valid",
			cfg:     Config{DropPrefixes: nil, PhonePrefix: "TEL"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	s := DefaultConfig().String()
	if !strings.Contains(s, "PHOTO") || !strings.Contains(s, "TEL") {
		t.Errorf("String() = %q, want the drop set and phone prefix to appear", s)
	}
}
