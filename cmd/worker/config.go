package main

import (
	"log"

	"storefront-backend/internal/config"

	"github.com/hibiken/asynq"
)

// Config holds all configuration for the worker
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
	HealthAddr    string
	Jobs          config.JobConfig
}

// loadConfig derives the worker settings from the application config
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		RedisAddr:     appCfg.Redis.Host,
		RedisPassword: appCfg.Redis.Password,
		RedisDB:       appCfg.Redis.DB,
		Concurrency:   10,
		HealthAddr:    ":9999",
		Jobs:          appCfg.Jobs,
	}

	log.Printf("[Config] Redis: %s (db %d), report cron: %q",
		cfg.RedisAddr, cfg.RedisDB, cfg.Jobs.DailySalesReportCron)

	return cfg
}

func (c *Config) redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
