package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trongate/trongate/common"
	"github.com/trongate/trongate/config"
	"github.com/trongate/trongate/proxy"
)

type HttpServer struct {
	config *config.ServerConfig
	server *http.Server
}

func NewHttpServer(cfg *config.ServerConfig, core *proxy.ProxyCore) *HttpServer {
	addr := fmt.Sprintf("%s:%s", cfg.HttpHost, cfg.HttpPort)

	handler := http.NewServeMux()
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Msgf("received %s request on path: %s with body length: %d", r.Method, r.URL.Path, r.ContentLength)

		if r.Method != http.MethodPost {
			// GET and anything else falls through to the destination untouched.
			status, headers, body, err := core.ForwardGet(r.Context(), r.URL.RawQuery, r.Header)
			writeProxied(w, status, headers, body, err)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error().Err(err).Msg("failed to read request body")
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		status, headers, respBody, err := core.HandleJsonRpc(r.Context(), body, r.Header)
		writeProxied(w, status, headers, respBody, err)
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	if cfg.MaxTimeoutMs > 0 {
		srv.ReadTimeout = time.Duration(cfg.MaxTimeoutMs) * time.Millisecond
	}

	return &HttpServer{
		config: cfg,
		server: srv,
	}
}

func (s *HttpServer) Start() error {
	log.Info().Msgf("starting http server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *HttpServer) Shutdown() error {
	log.Info().Msg("shutting down http server")
	return s.server.Shutdown(context.Background())
}

func writeProxied(w http.ResponseWriter, status int, headers http.Header, body []byte, err error) {
	if err != nil {
		log.Error().Err(err).Msg("failed to forward request")

		code := http.StatusInternalServerError
		var httpErr common.ErrorWithStatusCode
		if errors.As(err, &httpErr) {
			code = httpErr.ErrorStatusCode()
		}
		http.Error(w, err.Error(), code)
		return
	}

	for name, values := range headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
