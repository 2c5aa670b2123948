package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataFile: "crm_data.csv"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataFile: "crm_data.csv"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "empty data file returns ErrDataFileEmpty",
			config:  Config{Backend: "csv", DataFile: ""},
			wantErr: ErrDataFileEmpty,
		},
		{
			name:   "valid csv config",
			config: Config{Backend: "csv", DataFile: "crm_data.csv"},
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: "sqlite", DataFile: "crm.db"},
		},
		{
			name:   "valid jsonl config",
			config: Config{Backend: "jsonl", DataFile: "crm.jsonl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIsValidBackend(t *testing.T) {
	if !IsValidBackend(BackendCSV) || !IsValidBackend(BackendSQLite) || !IsValidBackend(BackendJSONL) {
		t.Fatal("expected csv, sqlite and jsonl to be valid")
	}
	if IsValidBackend("") || IsValidBackend("postgres") {
		t.Fatal("expected empty and unknown backends to be invalid")
	}
}
