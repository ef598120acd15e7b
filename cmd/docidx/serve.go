package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/docidx"
	dochttp "github.com/fwojciec/docidx/http"
	docprom "github.com/fwojciec/docidx/prometheus"
	docslog "github.com/fwojciec/docidx/slog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	handler, err := c.handler(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docidx.ErrorMessage(err))
		return err
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	deps.Logger.Info("serving", "addr", c.Addr)
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", c.Addr)

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handler loads every stored library and wraps search with logging and
// metrics.
func (c *ServeCmd) handler(deps *Dependencies) (*dochttp.Handler, error) {
	reg, err := openRegistry(deps, "")
	if err != nil {
		return nil, err
	}
	deps.Logger.Info("libraries loaded", "names", reg.Names())

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	searcher, err := docprom.NewSearcher(docslog.NewLoggingSearcher(reg, deps.Logger), metrics)
	if err != nil {
		return nil, err
	}

	h := dochttp.NewHandler(searcher, deps.Logger)
	h.Limit = deps.Config.Search.Limit
	h.Handle("GET /metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	return h, nil
}
