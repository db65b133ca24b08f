package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"recruitflow/internal/bootstrap/config"
	"recruitflow/internal/bootstrap/database"
	"recruitflow/internal/bootstrap/logging"
	cacheinfra "recruitflow/internal/infrastructure/cache"
	sqliterepo "recruitflow/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "recruitflow/internal/infrastructure/persistence/sqlite/uow"
	"recruitflow/internal/ports"
	"recruitflow/internal/usecase/review"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(provideReviewSettings),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewReviewRepository,
			fx.As(new(ports.ReviewRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(review.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideReviewSettings(cfg config.Config) (review.Settings, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return review.Settings{}, err
	}
	return review.Settings{
		PageSize:     cfg.Review.PageSize,
		NameCacheTTL: cfg.Review.NameCacheTTL,
		Location:     loc,
	}, nil
}
