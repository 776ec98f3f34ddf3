// Package config resolves runtime settings from defaults, an optional
// .dayblocks.yaml file and DAYBLOCKS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

const envPrefix = "DAYBLOCKS"

type Config struct {
	DataDir           string
	Backend           string
	Timezone          string
	PollInterval      time.Duration
	SchedulerBuffer   int
	NoticeSeconds     int
	DefaultCategories []string
	Username          string
	Password          string
	LogFile           string
}

func Default() Config {
	return Config{
		DataDir:           "~/.dayblocks",
		Backend:           storage.KindDiskv,
		Timezone:          clock.DefaultZone,
		PollInterval:      time.Minute,
		SchedulerBuffer:   8,
		NoticeSeconds:     3,
		DefaultCategories: []string{"General", "Work", "Personal"},
		Username:          "dayblocks",
		Password:          "dayblocks",
		LogFile:           "",
	}
}

// newViper reads DAYBLOCKS_<KEY> from the environment for every key, so
// DAYBLOCKS_POLL_INTERVAL overrides poll_interval.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file on top of the defaults. Environment
// variables win over the file. A missing file is not an error.
func Load() (Config, error) {
	v := newViper()
	v.SetConfigName(".dayblocks")
	if override := v.GetString("config_path"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	cfg := FromViper(v, Default())
	return cfg, cfg.Validate()
}

// FromViper copies every key set in v over base. Values that do not parse,
// or are not positive where a count is expected, keep the base value.
func FromViper(v *viper.Viper, base Config) Config {
	cfg := base
	if s, ok := getString(v, "data_dir"); ok {
		cfg.DataDir = s
	}
	if s, ok := getString(v, "backend"); ok {
		cfg.Backend = strings.ToLower(s)
	}
	if s, ok := getString(v, "timezone"); ok {
		cfg.Timezone = s
	}
	if v.IsSet("poll_interval") {
		if d := v.GetDuration("poll_interval"); d > 0 {
			cfg.PollInterval = d
		}
	}
	if v.IsSet("scheduler_buffer") {
		if n := v.GetInt("scheduler_buffer"); n > 0 {
			cfg.SchedulerBuffer = n
		}
	}
	if v.IsSet("notice_seconds") {
		if n := v.GetInt("notice_seconds"); n > 0 {
			cfg.NoticeSeconds = n
		}
	}
	if v.IsSet("categories") {
		if list := cleanList(getList(v, "categories")); len(list) > 0 {
			cfg.DefaultCategories = list
		}
	}
	if s, ok := getString(v, "username"); ok {
		cfg.Username = s
	}
	if s, ok := getString(v, "password"); ok {
		cfg.Password = s
	}
	if s, ok := getString(v, "log_file"); ok {
		cfg.LogFile = s
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Backend {
	case storage.KindDiskv, storage.KindSQLite, storage.KindMemory:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if strings.TrimSpace(c.DataDir) == "" && c.Backend != storage.KindMemory {
		return errors.New("config: data dir is empty")
	}
	return nil
}

// ResolveDataDir expands a leading ~ in DataDir.
func (c Config) ResolveDataDir() (string, error) {
	dir, err := homedir.Expand(c.DataDir)
	if err != nil {
		return "", fmt.Errorf("config: expand %q: %w", c.DataDir, err)
	}
	return dir, nil
}

func (c Config) Zone() (clock.Zone, error) {
	return clock.LoadZone(c.Timezone)
}

func (c Config) Notice() time.Duration {
	return time.Duration(c.NoticeSeconds) * time.Second
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getString(v *viper.Viper, key string) (string, bool) {
	if !v.IsSet(key) {
		return "", false
	}
	raw := strings.TrimSpace(v.GetString(key))
	return raw, raw != ""
}

// getList accepts a yaml list or a comma separated string such as
// DAYBLOCKS_CATEGORIES="Work,Home".
func getList(v *viper.Viper, key string) []string {
	if raw, ok := v.Get(key).(string); ok {
		return strings.Split(raw, ",")
	}
	return v.GetStringSlice(key)
}
