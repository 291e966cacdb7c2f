package services

import (
	"context"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/ports"
)

// SettingsService reads and replaces the settings document
type SettingsService struct {
	store  ports.DocumentStore
	guard  *Guard
	logger *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store ports.DocumentStore, guard *Guard, logger *logger.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		guard:  guard,
		logger: logger.WithComponent("settings_service"),
	}
}

// GetSettings returns the stored settings, creating the defaults on first access
func (s *SettingsService) GetSettings(ctx context.Context) (*entities.Settings, error) {
	var settings *entities.Settings
	err := s.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		settings, err = s.store.LoadSettings(ctx)
		return err
	})
	if err != nil {
		return nil, serviceError("get settings", err)
	}

	return settings, nil
}

// UpdateSettings replaces the whole settings document
func (s *SettingsService) UpdateSettings(ctx context.Context, settings entities.Settings) (*entities.Settings, error) {
	settings.Theme = entities.ParseTheme(string(settings.Theme))

	err := s.guard.Do(ctx, func(ctx context.Context) error {
		return s.store.SaveSettings(ctx, &settings)
	})
	if err != nil {
		return nil, serviceError("update settings", err)
	}

	s.logger.Infow("Settings updated successfully", "theme", settings.Theme, "notifications", settings.Notifications)

	return &settings, nil
}
