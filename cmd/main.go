package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bzhu9/BasicChat/internal/announce"
	"github.com/bzhu9/BasicChat/internal/api"
	"github.com/bzhu9/BasicChat/internal/auth"
	"github.com/bzhu9/BasicChat/internal/cache"
	"github.com/bzhu9/BasicChat/internal/chat"
	"github.com/bzhu9/BasicChat/internal/config"
	"github.com/bzhu9/BasicChat/internal/events"
	"github.com/bzhu9/BasicChat/internal/logger"
	"github.com/bzhu9/BasicChat/internal/media"
	"github.com/bzhu9/BasicChat/internal/repository"
	"github.com/bzhu9/BasicChat/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logg, err := logger.New(cfg.App.Env != "production")
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	mc, err := repository.NewMongoClient(cfg.Mongo.URI)
	if err != nil {
		logg.Fatalw("mongo init", "err", err)
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()

	db := mc.Database(cfg.Mongo.Database)
	users := repository.NewUserRepository(db.Collection("users"))
	convs := repository.NewRecordRepository(db.Collection("conversations"))
	groups := repository.NewRecordRepository(db.Collection("group_chats"))
	announcements := repository.NewAnnouncementRepository(db.Collection("announcements"))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pub := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logg)
	defer func() { _ = pub.Close() }()

	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.PublicRead)
	if err != nil {
		logg.Fatalw("s3 init", "err", err)
	}

	chatSvc := chat.NewService(users, convs, groups, pub, logg)
	announceSvc := announce.NewService(announcements, logg)
	mediaSvc := media.NewService(store, cache.NewRedis(rdb), cfg.PresignTTL, logg)

	jv, err := auth.NewValidator(cfg.JWT)
	if err != nil {
		logg.Fatalw("jwt init", "err", err)
	}

	app := api.NewServer(api.NewHandlers(chatSvc, announceSvc, mediaSvc), jv)

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.App.Port)); err != nil {
			logg.Fatalw("server listen", "err", err)
		}
	}()
	logg.Infow("started", "port", cfg.App.Port, "env", cfg.App.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	logg.Info("stopped")
}
