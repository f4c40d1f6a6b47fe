package config

import (
	"docuflow/internal/api"
	"docuflow/internal/domain"
	"docuflow/internal/service"
	"docuflow/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   domain.Config
	Logger   domain.Logger
	Tokens   *service.TokenStore
	API      *api.Client
	Auth     *service.AuthService
	Users    *service.UserService
	Notifier domain.Notifier
}

// NewContainer wires the client: config, logger, token store, API client and
// services. The notifier is supplied by the front end.
func NewContainer(notifier domain.Notifier) *Container {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	tokens := service.NewTokenStore(cfg.GetStateDir())
	apiClient := api.NewClient(cfg.GetAPIBaseURL(), cfg.GetHTTPTimeout(), tokens.Token, appLogger)

	return &Container{
		Config:   cfg,
		Logger:   appLogger,
		Tokens:   tokens,
		API:      apiClient,
		Auth:     service.NewAuthService(apiClient, tokens, appLogger),
		Users:    service.NewUserService(apiClient, tokens, appLogger),
		Notifier: notifier,
	}
}

// Close releases reactive subscriptions held by the container's services.
func (c *Container) Close() {
	c.Users.Close()
}
