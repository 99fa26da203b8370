package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
)

func TestOverwriteValidation(t *testing.T) {
	svc := NewService(nil, model.Settings{})

	tests := []struct {
		name string
		in   model.Settings
	}{
		{name: "negative service fee", in: model.Settings{ServiceFeePercent: -1}},
		{name: "service fee above 100", in: model.Settings{ServiceFeePercent: 101}},
		{name: "negative featured fee", in: model.Settings{FeaturedFeePercent: -0.5}},
		{name: "featured fee above 100", in: model.Settings{FeaturedFeePercent: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Overwrite(context.Background(), tt.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSetCredentialValidation(t *testing.T) {
	svc := NewService(nil, model.Settings{})

	if err := svc.SetCredential(context.Background(), "", "secret"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if err := svc.SetCredential(context.Background(), "TWILIO_AUTH_TOKEN", "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty value, got %v", err)
	}
}

func TestEnvStatusReportsWatchedVars(t *testing.T) {
	svc := NewService(nil, model.Settings{})

	t.Setenv("MAPS_API_KEY", "key")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	statuses, err := svc.EnvStatus(context.Background())
	if err != nil {
		t.Fatalf("env status: %v", err)
	}
	if len(statuses) != len(watchedEnvVars) {
		t.Fatalf("expected %d entries, got %d", len(watchedEnvVars), len(statuses))
	}

	byName := map[string]bool{}
	for _, status := range statuses {
		byName[status.Name] = status.Configured
	}
	if !byName["MAPS_API_KEY"] {
		t.Fatalf("expected MAPS_API_KEY configured")
	}
	if byName["TWILIO_AUTH_TOKEN"] {
		t.Fatalf("expected TWILIO_AUTH_TOKEN not configured")
	}
}
