package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by the "backend" config key.
const (
	BackendDiskv  = "diskv"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config describes where the board keeps its data.
type Config interface {
	BasePath() string
	Backend() string
	Redis() RedisConfig
}

// Settings is the fully resolved configuration file.
type Settings struct {
	Path        string
	BackendName string
	RedisConfig RedisConfig
	Log         LogSettings
	Slideshow   SlideshowSettings
}

// LogSettings configures zerolog output.
type LogSettings struct {
	Level  string
	Format string
	File   string
}

// SlideshowSettings holds the raw slideshow durations, e.g. "15s" and "1m".
type SlideshowSettings struct {
	Rotate string
	Idle   string
}

func (s *Settings) BasePath() string   { return s.Path }
func (s *Settings) Backend() string    { return s.BackendName }
func (s *Settings) Redis() RedisConfig { return s.RedisConfig }

// LoadConfig walks the usual locations for a .campusboard config file and
// overlays CAMPUSBOARD_* environment variables (optionally from a .env file).
func LoadConfig() (*Settings, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("path", "~/.campusboard.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "campusboard:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("slideshow.rotate", (15 * time.Second).String())
	v.SetDefault("slideshow.idle", (60 * time.Second).String())
	v.SetConfigName(".campusboard") // .yaml is implicit
	v.SetEnvPrefix("CAMPUSBOARD")
	v.AutomaticEnv()

	if override := os.Getenv("CAMPUSBOARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	logFile := v.GetString("log.file")
	if logFile == "" {
		logFile = filepath.Join(path, "campusboard.log")
	}
	if logFile, err = homedir.Expand(logFile); err != nil {
		return nil, err
	}

	return &Settings{
		Path:        path,
		BackendName: v.GetString("backend"),
		RedisConfig: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   logFile,
		},
		Slideshow: SlideshowSettings{
			Rotate: v.GetString("slideshow.rotate"),
			Idle:   v.GetString("slideshow.idle"),
		},
	}, nil
}
