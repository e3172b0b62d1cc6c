package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/config"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/logger"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/store"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/visits"
)

func Start(e *echo.Echo, cfg *config.Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	address := fmt.Sprintf(":%d", cfg.HttpPort)
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Infow("starting http server", "address", address)
				if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorw("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// Set after mongo is initialized. Lifecycle hooks run in topological order,
			// and the dependency on the database comes first.
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

// Storage provides the database and the repositories the KPI service reads from.
func Storage() fx.Option {
	return fx.Provide(
		store.NewConfig,
		store.GetConnectionString,
		store.NewClient,
		store.NewDatabase,
		visits.NewRepository,
		patients.NewRepository,
		patients.NewService,
	)
}

// Services provides the configuration, storage and KPI services. Callers supply the
// logger.
func Services() fx.Option {
	return fx.Options(
		fx.Provide(
			config.NewConfig,
			kpis.NewEngine,
			kpis.NewService,
		),
		Storage(),
	)
}

func Dependencies() fx.Option {
	return fx.Options(
		Services(),
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	)
}

func MainLoop() {
	fx.New(
		Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	).Run()
}
