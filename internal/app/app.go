package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fitness-app-go/internal/config"
	"fitness-app-go/internal/db"
	authdomain "fitness-app-go/internal/domain/auth"
	userdomain "fitness-app-go/internal/domain/user"
	workoutdomain "fitness-app-go/internal/domain/workout"
	"fitness-app-go/internal/jobs"
	"fitness-app-go/internal/metrics"
	workoutcache "fitness-app-go/internal/repository/cache/workout"
	"fitness-app-go/internal/repository/inmemory"
	sessionpg "fitness-app-go/internal/repository/postgres/session"
	userpg "fitness-app-go/internal/repository/postgres/user"
	workoutpg "fitness-app-go/internal/repository/postgres/workout"
	sessionredis "fitness-app-go/internal/repository/redis/session"
	"fitness-app-go/internal/storage/avatar"
	"fitness-app-go/internal/transport/httpserver"
	"fitness-app-go/internal/transport/httpserver/handler"
	authmw "fitness-app-go/internal/transport/httpserver/middleware"
	"fitness-app-go/pkg/logger"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
	scheduler  *jobs.Scheduler
	log        logger.Logger
}

type repositories struct {
	users    userdomain.Repository
	workouts workoutdomain.Repository
	sessions authdomain.Store
	cache    workoutdomain.Cache
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	repos, err := a.initRepositories()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	log.Info("app: initializing avatar storage", "dir", cfg.Uploads.Dir)
	avatars, err := avatar.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix, cfg.Uploads.MaxAvatarMB<<20)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	users := userdomain.NewService(repos.users, avatars, cfg.Auth.BcryptCost)
	sessions := authdomain.NewService(repos.sessions, users, cfg.Auth.SessionTTL)
	workouts := workoutdomain.NewService(
		repos.workouts,
		workoutdomain.WithCache(repos.cache, cfg.PlanCache.TTL),
		workoutdomain.WithWeekZone(cfg.WeekZone),
	)

	registry := metrics.NewRegistry()
	metricsManager := metrics.NewManager("fitness", "api", registry)

	a.scheduler = jobs.NewScheduler(log)
	if err := a.scheduler.ScheduleSessionSweep(cfg.Auth.SweepSpec, sessions); err != nil {
		_ = a.Close()
		return nil, err
	}
	a.scheduler.Start()

	deps := httpserver.RouterDeps{
		Handlers: handler.New(sessions, users, workouts, metricsManager, log, cfg.Uploads.MaxAvatarMB<<20),
		Auth:     authmw.NewBearerAuth(cfg.Auth, sessions, users, log),
		Metrics:  metricsManager,
		Gatherer: registry,
	}
	if a.redis != nil {
		deps.LoginLimiter = redis_rate.NewLimiter(a.redis)
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, deps, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)
	return a, nil
}

func (a *App) initRepositories() (repositories, error) {
	if a.cfg.Storage == config.StorageMemory {
		a.log.Warn("app: using in-memory storage, data is lost on restart")
		return repositories{
			users:    inmemory.NewUserRepository(),
			workouts: inmemory.NewWorkoutRepository(),
			sessions: inmemory.NewSessionStore(),
			cache:    inmemory.NewWeekCache(),
		}, nil
	}

	if a.cfg.DB.AutoMigrate {
		a.log.Info("app: applying migrations")
		if err := db.Migrate(a.cfg.DB.MigrationURL()); err != nil {
			return repositories{}, err
		}
	}

	a.log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(a.cfg.DB, a.log)
	if err != nil {
		return repositories{}, err
	}
	a.db = dbConn

	repos := repositories{
		users:    userpg.NewPostgres(dbConn),
		workouts: workoutpg.NewPostgres(dbConn),
		sessions: sessionpg.NewPostgres(dbConn),
	}

	if a.cfg.Redis.Enabled() {
		a.log.Info("app: connecting to redis", "addr", a.cfg.Redis.Addr)
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		a.redis = client

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return repositories{}, fmt.Errorf("redis ping: %w", err)
		}
		repos.sessions = sessionredis.NewRedis(client)
	}

	if a.cfg.PlanCache.Enabled {
		repos.cache = workoutcache.NewFreeCache(a.cfg.PlanCache.SizeBytes, a.log)
	}

	return repos, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var err error
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.redis != nil {
		err = multierr.Append(err, a.redis.Close())
	}
	if a.db != nil {
		sqlDB, dbErr := a.db.DB()
		if dbErr != nil {
			err = multierr.Append(err, dbErr)
		} else {
			err = multierr.Append(err, sqlDB.Close())
		}
	}
	return err
}
