package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/config"
	"github.com/km-arc/go-injector/framework/injector"
	"github.com/km-arc/go-injector/framework/inspect"
	"github.com/km-arc/go-injector/framework/providers"
)

// Application is the root injector of a process. It embeds the Injector and
// owns a ProviderRegistry so user code can call app.Map(), app.GetInstance()
// and app.Register() directly.
type Application struct {
	*injector.Injector
	Providers *injector.ProviderRegistry

	config *config.Config
	logger *zap.Logger
}

// New loads configuration, builds the logger and registers the framework
// providers on a fresh root injector.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger, err := providers.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return NewWith(cfg, logger)
}

// NewWith is New with explicit configuration and logger.
func NewWith(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	inj := injector.New(injector.WithLogger(logger))
	a := &Application{
		Injector:  inj,
		Providers: injector.NewProviderRegistry(inj),
		config:    cfg,
		logger:    logger,
	}

	for _, p := range []injector.Provider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggerServiceProvider{Logger: logger},
		&providers.ManifestServiceProvider{},
		&providers.InspectServiceProvider{},
	} {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a Provider to the application.
func (a *Application) Register(p injector.Provider) error {
	return a.Providers.Register(p)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the process logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Inspect resolves the inspect handler. ok is false when inspection is
// disabled.
func (a *Application) Inspect() (h *inspect.Handler, ok bool) {
	if !a.HasMapping(providers.InspectKey) {
		return nil, false
	}
	h, err := injector.Resolve[*inspect.Handler](a.Injector, providers.InspectKey)
	return h, err == nil
}

// Run boots the application if needed and serves the inspect endpoints on
// APP_PORT until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	h, ok := a.Inspect()
	if !ok {
		a.logger.Info("inspect disabled, nothing to serve")
		<-ctx.Done()
		return nil
	}

	srv := &http.Server{
		Addr:              ":" + a.config.App.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving",
			zap.String("addr", srv.Addr),
			zap.String("env", a.config.App.Env),
			zap.String("injector", a.ID()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.config.IsProduction() }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
