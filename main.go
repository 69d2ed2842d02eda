package main

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mbolis/case-report/app"
	"github.com/mbolis/case-report/config"
	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/metrics"
	"github.com/mbolis/case-report/routes"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal("main.env:", err)
	}
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if !cfg.Enabled {
		log.Info("submission panel is locked")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := app.New(cfg, metrics.New(reg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.Sessions.Run(ctx, time.Minute)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatal("main.listen:", err)
	}
	log.Info("Listening on " + cfg.Url())

	err = runServer(ctx, newServer(cfg, routes.Wire(app)), ln)
	if err != nil {
		log.Fatal("main.server:", err)
	}

	// handlers are done, so no new dispatch can start past this point
	log.Infof("waiting for %d pending submissions", app.Transmitter.InFlight())
	app.Transmitter.Wait()
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

const shutdownTimeout = 10 * time.Second

// runServer serves until ctx is done, then shuts down and returns only once
// every in-flight request has completed.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ln)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-served; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
