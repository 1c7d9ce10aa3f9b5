package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const shutdownTimeout = 10 * time.Second

// ListenAndServe runs the given servers until the context is cancelled, then
// shuts them down gracefully. It returns once every server stopped.
func ListenAndServe(ctx context.Context, servers ...*http.Server) {
	go func() {
		<-ctx.Done()

		for _, s := range servers {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := s.Shutdown(shutdownCtx); err != nil {
				logs.Warn(errors.New("shutting down the server failed").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
			cancel()
		}
	}()

	var wg sync.WaitGroup

	for _, s := range servers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logs.WithTag("addr", s.Addr).Info("starting server")

			if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logs.Error(errors.New("server stopped").
					WithTag("addr", s.Addr).
					Wrap(err))
				return
			}
			logs.WithTag("addr", s.Addr).Info("stopping server")
		}()
	}

	wg.Wait()
}

// MetricsPathFormatter drops the path label on statuses produced by path
// probing, keeping the request metrics cardinality bounded.
func MetricsPathFormatter(statusCode int, path string) string {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusMethodNotAllowed:
		return ""
	}
	return path
}
