package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Yimmi-urbano/dencia-app-front/internal/components"
	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
)

func Run() error {
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(appCtx)
	if err != nil {
		components.SetupLogger("").Error("load config failed", "err", err)
		return err
	}
	logger := components.SetupLogger(cfg.Env)

	comps, err := components.InitComponents(appCtx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quitChan)

	runErr := serve(comps.HttpServer.Run, quitChan, logger)

	logger.Info("shutting down the services...")
	comps.ShutdownAll()
	logger.Info("gracefully shutting down the servers")

	return runErr
}

// serve runs the server until a signal arrives or the server itself fails,
// then waits for it to stop.
func serve(run func(context.Context) error, quit <-chan os.Signal, logger *slog.Logger) error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	errChan := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		errChan <- run(ctx)
		logger.Info("http server stopped")
	}()

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("captured signal, initiating shutdown", "signal", sig.String())
	case runErr = <-errChan:
		if runErr != nil {
			logger.Error("http server failed", "err", runErr)
		}
	}

	stop()
	wg.Wait()
	return runErr
}
