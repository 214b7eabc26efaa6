package webview

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// Config captures the settings for serving a result page.
type Config struct {
	Addr    string
	Client  *api.Client
	Timeout time.Duration
}

// Serve starts an HTTP server that hosts result pages until ctx is
// cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("webview: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("webview: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

// NewHandler builds the HTTP handler for result pages. The page proxies
// the backend result lookup, so the backend stays the single source of
// truth for scores.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Client == nil {
		return nil, errors.New("webview: client is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/result/", serveResult(cfg.Client, timeout))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!doctype html><html><body><p>Use /result/{test_id}?roll_no=...&amp;section=...</p></body></html>"))
	})
	return mux, nil
}

// serveResult fetches a result from the backend and renders it as HTML.
func serveResult(client *api.Client, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rawID := r.URL.Path[len("/result/"):]
		rollNo := r.URL.Query().Get("roll_no")
		section := r.URL.Query().Get("section")
		if rawID == "" || rollNo == "" || section == "" {
			http.Error(w, "test id, roll_no and section are required", http.StatusBadRequest)
			return
		}
		testID, err := strconv.Atoi(rawID)
		if err != nil {
			http.Error(w, "test id must be a number", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		result, err := client.TestResult(ctx, testID, rollNo, section)
		if err != nil {
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				http.Error(w, apiErr.Message, apiErr.Status)
				return
			}
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ResultPage(result).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
