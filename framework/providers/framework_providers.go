package providers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/config"
	"github.com/km-arc/go-injector/framework/injector"
	"github.com/km-arc/go-injector/framework/inspect"
	"github.com/km-arc/go-injector/framework/manifest"
)

// Keys bound by the framework providers.
const (
	ConfigKey   = "config"
	LoggerKey   = "logger"
	ManifestKey = "manifest"
	InspectKey  = "inspect"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound keys:
//   - "config"  → *config.Config
type ConfigServiceProvider struct {
	injector.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(inj *injector.Injector) {
	inj.Map(ConfigKey).ToValue(p.Config)
}

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerServiceProvider binds the process logger.
//
// Bound keys:
//   - "logger"  → *zap.Logger
type LoggerServiceProvider struct {
	injector.BaseProvider
	Logger *zap.Logger
}

func (p *LoggerServiceProvider) Register(inj *injector.Injector) {
	inj.Map(LoggerKey).ToValue(p.Logger)
}

// NewLogger creates a structured logger for the environment: JSON in
// production, console otherwise, at LOG_LEVEL.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LOG_LEVEL: %w", err)
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.With(zap.String("app", cfg.App.Name)), nil
}

// ── ManifestServiceProvider ───────────────────────────────────────────────────

// ManifestServiceProvider applies the YAML manifest named by
// INJECTOR_BINDINGS during boot, after every Register has run, so manifest
// values override bindings made in code.
//
// Bound keys (only when a manifest is configured):
//   - "manifest"  → *manifest.Node
type ManifestServiceProvider struct {
	injector.BaseProvider
}

func (p *ManifestServiceProvider) Register(*injector.Injector) {}

func (p *ManifestServiceProvider) Boot(inj *injector.Injector) error {
	cfg, err := injector.Resolve[*config.Config](inj, ConfigKey)
	if err != nil {
		return err
	}
	if cfg.Injector.BindingsFile == "" {
		return nil
	}

	doc, err := manifest.Load(cfg.Injector.BindingsFile)
	if err != nil {
		return err
	}
	node, err := doc.Apply(inj)
	if err != nil {
		return err
	}
	inj.Map(ManifestKey).ToValue(node)
	return nil
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider registers the inspect handler when INJECTOR_INSPECT
// is on. The handler is built on first use.
//
// Bound keys:
//   - "inspect"  → *inspect.Handler
type InspectServiceProvider struct {
	injector.BaseProvider
}

func (p *InspectServiceProvider) Register(inj *injector.Injector) {
	inj.Map(InspectKey).ToSingleton(func() any {
		logger, err := injector.Resolve[*zap.Logger](inj, LoggerKey)
		if err != nil && !injector.IsMappingNotFound(err) {
			inj.Logger().Warn("inspect request logging disabled", zap.Error(err))
		}
		return inspect.New(inj, logger)
	})
}

func (p *InspectServiceProvider) Boot(inj *injector.Injector) error {
	cfg, err := injector.Resolve[*config.Config](inj, ConfigKey)
	if err != nil {
		return err
	}
	if !cfg.Injector.Inspect {
		inj.Unmap(InspectKey)
	}
	return nil
}
