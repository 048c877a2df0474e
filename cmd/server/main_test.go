package main

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"go.ngs.io/ocean-s2z/internal/domain"
)

func TestRunConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		backend string
	}{
		{"missing path", "", ""},
		{"unknown backend", "ecom.nc", "zarr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ECOM_PATH", tt.path)
			t.Setenv("ECOM_BACKEND", tt.backend)
			err := run(zap.NewNop().Sugar())
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Errorf("run err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ECOM_BUFFER", "3")
	if got := getEnvInt("ECOM_BUFFER", 1); got != 3 {
		t.Errorf("getEnvInt = %d, want 3", got)
	}
	t.Setenv("ECOM_BUFFER", "-2")
	if got := getEnvInt("ECOM_BUFFER", 1); got != 1 {
		t.Errorf("getEnvInt(-2) = %d, want default 1", got)
	}
}
