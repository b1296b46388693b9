package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type App struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"`
}

type Mongo struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AWS struct {
	Region            string `mapstructure:"region"`
	Bucket            string `mapstructure:"bucket"`
	PublicRead        bool   `mapstructure:"public_read"`
	PresignTTLSeconds int    `mapstructure:"presign_ttl_seconds"`
}

type JWT struct {
	Alg           string `mapstructure:"alg"`
	HSSecret      string `mapstructure:"hs_secret"`
	PublicKeyPath string `mapstructure:"public_key_path"`
}

type Config struct {
	App   App   `mapstructure:"app"`
	Mongo Mongo `mapstructure:"mongodb"`
	Redis Redis `mapstructure:"redis"`
	Kafka Kafka `mapstructure:"kafka"`
	AWS   AWS   `mapstructure:"aws"`
	JWT   JWT   `mapstructure:"jwt"`

	// derived
	ShutdownTimeout time.Duration
	PresignTTL      time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("aws.presign_ttl_seconds", 600)
	v.SetDefault("jwt.alg", "HS256")
	v.SetDefault("kafka.topic", "chat.events")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second
	cfg.PresignTTL = time.Duration(cfg.AWS.PresignTTLSeconds) * time.Second
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.App.Port == 0 {
		return errors.New("app.port missing or invalid")
	}
	if cfg.Mongo.URI == "" {
		return errors.New("mongodb.uri missing")
	}
	if cfg.Mongo.Database == "" {
		return errors.New("mongodb.database missing")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("redis.addr missing")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers missing")
	}
	if cfg.AWS.Region == "" || cfg.AWS.Bucket == "" {
		return errors.New("aws.region and aws.bucket required")
	}
	switch strings.ToUpper(cfg.JWT.Alg) {
	case "HS256":
		if cfg.JWT.HSSecret == "" {
			return errors.New("jwt.hs_secret required for HS256")
		}
	case "RS256":
		if cfg.JWT.PublicKeyPath == "" {
			return errors.New("jwt.public_key_path required for RS256")
		}
	default:
		return errors.New("invalid jwt.alg (use RS256 or HS256)")
	}
	return nil
}
