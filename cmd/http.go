package cmd

import (
	commonJetstream "concert-ticket-pipeline/common/jetstream"
	inboundHttp "concert-ticket-pipeline/inbound/http"
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"net/http"
	"time"
)

func runHttpServerCmd(ctx context.Context, cfg *viper.Viper) {
	stopProfiling := startProfiling(cfg, "http")
	defer stopProfiling()

	topic := mustGetString(cfg, "topic.order_events")

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	if _, err := commonJetstream.CreateTopicStream(ctx, js, topic); err != nil {
		log.Fatalln("failed to create stream", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.WriteHeader(http.StatusOK)
	})

	inboundHttp.RegisterPurchaseHttp(mux, js, validator.New(), topic)

	timeout := cfg.GetDuration("http.timeout")
	timeoutMiddleware := inboundHttp.TimeoutMiddleware(timeout)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           inboundHttp.RecoverMiddleware(timeoutMiddleware(inboundHttp.CorsMiddleware(mux))),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      timeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started", slog.String("addr", srv.Addr))

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	slog.Info("http server stopped")
}
