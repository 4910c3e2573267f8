package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yafiirfan/backend.movie/internal/api"
	"github.com/yafiirfan/backend.movie/internal/auth"
	"github.com/yafiirfan/backend.movie/internal/cache"
	"github.com/yafiirfan/backend.movie/internal/config"
	"github.com/yafiirfan/backend.movie/internal/events"
	"github.com/yafiirfan/backend.movie/internal/repository"
	"github.com/yafiirfan/backend.movie/internal/service"
	"github.com/yafiirfan/backend.movie/migrations"
)

func connectDB(logger zerolog.Logger, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("connecting to database after retries: %w", err)
}

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration")
	}

	db, err := connectDB(logger, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to database")
	}
	defer db.Close()

	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		logger.Fatal().Err(err).Msg("migrating users table")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaTopic)
	defer kafkaWriter.Close()

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.TokenTTL)
	google := auth.NewGoogleVerifier(cfg.GoogleClient)
	userRepo := repository.NewMySQLUserRepository(db)
	userCache := cache.NewUserCache(rdb, cfg.CacheTTL)
	publisher := events.NewPublisher(kafkaWriter)

	userService := service.NewUserService(userRepo, tokens, google, userCache, publisher, logger)
	userHandler := api.NewUserHandler(userService)

	e := api.NewRouter(userHandler, tokens, logger)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
