package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine     string // sqlite3 | postgres
		Path       string // sqlite3 only
		Host       string
		Port       int
		User       string
		Password   string
		Name       string
		DisableTLS bool
	}

	ServerConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	CacheConfig struct {
		Backend      string // memory | redis
		DashboardTTL time.Duration
		Redis        RedisConfig
	}

	SchedulerConfig struct {
		Enabled          bool
		DashboardRefresh time.Duration
	}

	Config struct {
		Env          string // DEV | TEST | QA | PROD
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		TimeZone     string
		WorkDir      string

		Database  DatabaseConfig
		Server    ServerConfig
		Cache     CacheConfig
		Scheduler SchedulerConfig
	}
)

// Address returns the "host:port" of a networked database engine.
func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Location resolves TimeZone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "ChinaProf")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("timeZone", "Local")

	conf.SetDefault("db.engine", "sqlite3")
	conf.SetDefault("db.path", "data/chinaprof.db")
	conf.SetDefault("db.host", "localhost")
	conf.SetDefault("db.port", 5432)
	conf.SetDefault("db.user", "chinaprof")
	conf.SetDefault("db.password", "")
	conf.SetDefault("db.name", "chinaprof")
	conf.SetDefault("db.disableTLS", true)

	conf.SetDefault("server.host", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.disableReqLogs", false)

	conf.SetDefault("cache.backend", "memory")
	conf.SetDefault("cache.dashboardTTL", 5*time.Minute)
	conf.SetDefault("cache.redis.addr", "localhost:6379")
	conf.SetDefault("cache.redis.password", "")
	conf.SetDefault("cache.redis.db", 0)

	conf.SetDefault("scheduler.enabled", true)
	conf.SetDefault("scheduler.dashboardRefresh", 4*time.Minute)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	workDir := Getwd()
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		TimeZone:     conf.GetString("timeZone"),
		WorkDir:      workDir,
		Database: DatabaseConfig{
			Engine:     conf.GetString("db.engine"),
			Path:       conf.GetString("db.path"),
			Host:       conf.GetString("db.host"),
			Port:       conf.GetInt("db.port"),
			User:       conf.GetString("db.user"),
			Password:   conf.GetString("db.password"),
			Name:       conf.GetString("db.name"),
			DisableTLS: conf.GetBool("db.disableTLS"),
		},
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  conf.GetBool("server.disableReqLogs"),
		},
		Cache: CacheConfig{
			Backend:      conf.GetString("cache.backend"),
			DashboardTTL: conf.GetDuration("cache.dashboardTTL"),
			Redis: RedisConfig{
				Addr:     conf.GetString("cache.redis.addr"),
				Password: conf.GetString("cache.redis.password"),
				DB:       conf.GetInt("cache.redis.db"),
			},
		},
		Scheduler: SchedulerConfig{
			Enabled:          conf.GetBool("scheduler.enabled"),
			DashboardRefresh: conf.GetDuration("scheduler.dashboardRefresh"),
		},
	}
}
