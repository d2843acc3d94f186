/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command apierr-demo runs a small theatre API that reports every failure
// through the error-handling advice, over HTTP and optionally gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/apierr/advice"
	"dirpx.dev/apierr/authx"
	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/config"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/ginx"
	"dirpx.dev/apierr/grpcx"
	"dirpx.dev/apierr/locale"
	"dirpx.dev/apierr/logx"
	"dirpx.dev/apierr/mapper"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.BindFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load("", flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	zl := logx.New(cfg.Log)
	defer func() { _ = zl.Sync() }()
	log := logx.NewZapLogger(zl)

	catalog, err := locale.LoadDir(cfg.Errors.CatalogDir, cfg.Errors.DefaultLocale)
	if err != nil {
		return err
	}
	adv := advice.New(newClassifier(cfg, catalog), log)

	auth, err := newAuthenticator(cfg, log)
	if err != nil {
		return err
	}

	if !cfg.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	ginx.UseJSONFieldNames()
	validate := validator.New()
	validate.RegisterTagNameFunc(fault.JSONFieldName)

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: newRouter(&routes{
			adv:          adv,
			auth:         auth,
			prefix:       cfg.Errors.KeyPrefix,
			idHeader:     cfg.Errors.RequestIDHeader,
			maxBodyBytes: cfg.HTTP.MaxBodyBytes,
			validate:     validate,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		log.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve failed: %w", err)
		}
	}()

	var gs *grpc.Server
	if cfg.GRPC.Addr != "" {
		m, err := mapper.New()
		if err != nil {
			return err
		}
		gs = grpc.NewServer(grpc.ChainUnaryInterceptor(
			grpcx.UnaryServerInterceptor(adv, m, cfg.GRPC.Domain),
		))
		healthpb.RegisterHealthServer(gs, health.NewServer())

		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
		go func() {
			log.Info("grpc server started", zap.String("addr", cfg.GRPC.Addr))
			if err := gs.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc serve failed: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server exited", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if gs != nil {
		stopped := make(chan struct{})
		go func() {
			gs.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			gs.Stop()
		}
	}
	return srv.Shutdown(shutdownCtx)
}

func newClassifier(cfg config.Config, catalog *locale.Catalog) *classify.Classifier {
	opts := []classify.Option{
		classify.WithKeyPrefix(cfg.Errors.KeyPrefix),
		classify.WithDefaultLocale(cfg.Errors.DefaultLocale),
		classify.WithMeta(map[string]any{"service": cfg.Service}),
	}
	if cfg.Errors.AssignIDs {
		opts = append(opts, classify.WithRequestIDs())
	}
	if cfg.Errors.LocaleMeta {
		opts = append(opts, classify.WithLocaleMeta())
	}
	return classify.New(catalog, opts...)
}

// newAuthenticator uses the configured secret. Without one, a random secret
// is generated and a demo admin token is logged.
func newAuthenticator(cfg config.Config, log logx.Logger) (*authx.Authenticator, error) {
	opts := []authx.Option{authx.WithIssuer(cfg.Auth.Issuer), authx.WithAudience(cfg.Auth.Audience)}
	if cfg.Auth.Secret != "" {
		return authx.New([]byte(cfg.Auth.Secret), opts...)
	}
	a, err := authx.New([]byte(uuid.NewString()), opts...)
	if err != nil {
		return nil, err
	}
	token, err := a.Issue("demo", time.Hour, "admin")
	if err != nil {
		return nil, err
	}
	log.Warn("auth.secret not set, using a random secret", zap.String("demo_token", token))
	return a, nil
}
