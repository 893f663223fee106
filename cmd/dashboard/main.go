package main

import (
	"context"
	"log/slog"

	"retailcast/config"
	"retailcast/internal/delivery"
	"retailcast/internal/delivery/http"
	"retailcast/internal/delivery/http/router/handler"
	"retailcast/internal/infra/insight"
	"retailcast/internal/infra/logs"
	"retailcast/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		insight.NewClient,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewInsightService,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewDashboardHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(http.NewServer, fx.ResultTags(`group:"deliveries"`)),
	)
}

func startServer(params startServerParams) {
	for _, d := range params.Deliveries {
		serve := d
		params.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := serve.Serve(context.Background()); err != nil {
						params.Logger.Error("delivery stopped", slog.Any("error", err))
					}
				}()

				return nil
			},
		})
	}
}
