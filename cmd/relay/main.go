package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ephemera/internal/relay"
)

func main() {
	pflag.String("listen", ":1999", "listen address")
	pflag.Int64("read-limit", relay.DefaultReadLimit, "max inbound frame size in bytes")
	pflag.String("log-level", "info", "log level (debug, info, warn, error)")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("EPHEMERA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		logrus.WithError(err).Fatal("bind flags")
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		log.WithError(err).Fatal("parse log level")
	}
	log.SetLevel(level)

	srv := relay.NewServer(log, v.GetInt64("read-limit"))
	httpSrv := &http.Server{
		Addr:    v.GetString("listen"),
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("listen", httpSrv.Addr).Info("relay listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("listen")
	}
	log.Info("relay stopped")
}
