package httpserver

import (
	"net/http"
	"time"

	"shared-finance-go/internal/config"
)

func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout(cfg.HTTP) + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
