// Package app wires the client together: one HTTP client, one API module and
// one state slice per resource.
package app

import (
	"github.com/kislikjeka/expensetrack/internal/infra/gateway/expenseapi"
	"github.com/kislikjeka/expensetrack/internal/module/category"
	"github.com/kislikjeka/expensetrack/internal/module/entry"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/config"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// State is the application state: every slice, owned here and injected into
// the screens that need it.
type State struct {
	Entries    *entry.Slice
	Categories *category.Slice
}

// App holds the configured client and its state
type App struct {
	Config     *config.Config
	Currencies *config.CurrenciesConfig
	Logger     *logger.Logger
	Client     *expenseapi.Client
	State      *State
}

// New builds the application from configuration
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfig, "invalid configuration")
	}

	currencies, err := config.LoadCurrenciesConfig(cfg.CurrenciesConfigPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfig, "load currencies")
	}

	client := expenseapi.NewClient(cfg.APIBaseURL, log,
		expenseapi.WithTimeout(cfg.HTTPTimeout),
		expenseapi.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)

	return &App{
		Config:     cfg,
		Currencies: currencies,
		Logger:     log,
		Client:     client,
		State:      NewState(client, log),
	}, nil
}

// NewState creates empty slices backed by the given transport
func NewState(client *expenseapi.Client, log *logger.Logger) *State {
	return &State{
		Entries:    entry.NewSlice(entry.NewAPI(client), log),
		Categories: category.NewSlice(category.NewAPI(client), log),
	}
}
