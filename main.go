package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-injector/framework/app"
	"github.com/km-arc/go-injector/framework/injector"
)

// Greeter is wired from the injector through struct tags.
type Greeter struct {
	Greeting string      `di:"inject:greeting"`
	Audience string      `di:"inject(name=\"audience\"):greeting"`
	Logger   *zap.Logger `di:"inject:logger"`

	message string
}

func (g *Greeter) PostConstructs() []string { return []string{"Prepare"} }

func (g *Greeter) Prepare() { g.message = g.Greeting + ", " + g.Audience }

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		panic(err)
	}
	logger := application.Logger()
	defer func() { _ = logger.Sync() }()

	// ── Bindings ─────────────────────────────────────────────────────────────

	application.Map("greeting").ToValue("Hello")
	application.Map("greeting", "audience").ToValue("World")
	application.Map("greeter").ToType(func() any { return &Greeter{} })

	if err := application.Boot(); err != nil {
		logger.Fatal("boot failed", zap.Error(err))
	}

	// ── Child injector overrides ──────────────────────────────────────────────

	request := application.CreateChildInjector()
	request.Map("greeting", "audience").ToValue("Gopher")

	target := &Greeter{}
	if err := request.InjectInto(target); err != nil {
		logger.Fatal("inject failed", zap.Error(err))
	}
	logger.Info(target.message, zap.String("injector", request.ID()))

	// Type bindings are wired by the node that owns them.
	greeter := injector.MustResolve[*Greeter](request, "greeter")
	logger.Info(greeter.message, zap.String("injector", application.ID()))

	// ── Serve /injector ───────────────────────────────────────────────────────

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
