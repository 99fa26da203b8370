package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

var ErrValidation = errors.New("invalid settings input")

// watchedEnvVars are the third-party credentials operators provision out of
// band. The env-status endpoint reports presence only, never values.
var watchedEnvVars = []string{
	"TWILIO_ACCOUNT_SID",
	"TWILIO_AUTH_TOKEN",
	"EMAIL_PROVIDER_API_KEY",
	"MAPS_API_KEY",
	"AI_API_KEY",
}

type Service struct {
	settings *pgrepo.SettingsRepo
	defaults model.Settings
}

type EnvVarStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

func NewService(settings *pgrepo.SettingsRepo, defaults model.Settings) *Service {
	return &Service{settings: settings, defaults: defaults}
}

func (s *Service) Get(ctx context.Context) (model.Settings, error) {
	if s.settings == nil {
		return model.Settings{}, fmt.Errorf("settings service dependencies are not configured")
	}
	return s.settings.Get(ctx, s.defaults)
}

// Overwrite replaces the singleton wholesale. Partial saves do not exist:
// the admin form always submits every field.
func (s *Service) Overwrite(ctx context.Context, in model.Settings) (model.Settings, error) {
	if in.ServiceFeePercent < 0 || in.ServiceFeePercent > 100 {
		return model.Settings{}, ErrValidation
	}
	if in.FeaturedFeePercent < 0 || in.FeaturedFeePercent > 100 {
		return model.Settings{}, ErrValidation
	}
	if s.settings == nil {
		return model.Settings{}, fmt.Errorf("settings service dependencies are not configured")
	}
	return s.settings.Overwrite(ctx, in)
}

// SetCredential stores a third-party secret. Values are write-only: nothing
// in the API ever echoes a stored secret back.
func (s *Service) SetCredential(ctx context.Context, name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(value) == "" {
		return ErrValidation
	}
	if s.settings == nil {
		return fmt.Errorf("settings service dependencies are not configured")
	}
	return s.settings.UpsertCredential(ctx, name, value)
}

func (s *Service) CredentialNames(ctx context.Context) ([]string, error) {
	if s.settings == nil {
		return nil, fmt.Errorf("settings service dependencies are not configured")
	}
	return s.settings.CredentialNames(ctx)
}

// EnvStatus reports which watched credentials are present, either as an
// environment variable or as a stored credential with a matching name.
func (s *Service) EnvStatus(ctx context.Context) ([]EnvVarStatus, error) {
	stored := map[string]bool{}
	if s.settings != nil {
		names, err := s.settings.CredentialNames(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			stored[strings.ToUpper(name)] = true
		}
	}

	statuses := make([]EnvVarStatus, 0, len(watchedEnvVars))
	for _, name := range watchedEnvVars {
		configured := os.Getenv(name) != "" || stored[name]
		statuses = append(statuses, EnvVarStatus{Name: name, Configured: configured})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })

	return statuses, nil
}
