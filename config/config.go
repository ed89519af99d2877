package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

type Config struct {
	Env string `yaml:"env"`

	HTTP struct {
		Address   string `yaml:"address"`
		TLSHost   string `yaml:"tls_host"`
		CertCache string `yaml:"cert_cache"`
	} `yaml:"http"`

	DB struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"db"`

	Index struct {
		Jobs       int `yaml:"jobs"`
		Applicants int `yaml:"applicants"`
	} `yaml:"index"`

	PerPage struct {
		Jobs       int `yaml:"jobs"`
		Applicants int `yaml:"applicants"`
	} `yaml:"per_page"`

	Posts struct {
		ExpireDays int `yaml:"expire_days"`
	} `yaml:"posts"`

	Mail struct {
		From    string `yaml:"from"`
		Backend string `yaml:"backend"`
		SMTP    struct {
			Addr     string `yaml:"addr"`
			Username string `yaml:"username"`
			Password string `yaml:"-"`
		} `yaml:"smtp"`
	} `yaml:"mail"`
}

// Default mirrors the stock jobboard settings.
func Default() Config {
	var cfg Config
	cfg.Env = ProEnv
	cfg.HTTP.CertCache = "/var/www/.cache"
	cfg.DB.Driver = "sqlite"
	cfg.Index.Jobs = 5
	cfg.Index.Applicants = 5
	cfg.PerPage.Jobs = 15
	cfg.PerPage.Applicants = 15
	cfg.Posts.ExpireDays = 30
	cfg.Mail.From = "jobboard@localhost.localdomain"
	cfg.Mail.Backend = "console"
	return cfg
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, err
			}
		case !errors.Is(err, os.ErrNotExist):
			return cfg, err
		}
	}
	applyEnv(&cfg)
	if cfg.Env == DevEnv && cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.DB.Driver == "sqlite" && cfg.DB.URL == "" {
		cfg.DB.URL = "./jobboard.db"
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Env, "ENV")
	set(&cfg.HTTP.Address, "ADDRESS_LISTEN")
	set(&cfg.HTTP.TLSHost, "WHITELIST_HOST")
	set(&cfg.DB.Driver, "DB_DRIVER")
	set(&cfg.DB.URL, "DB_URL")
	set(&cfg.Mail.From, "JOBBOARD_FROM_EMAIL")
	set(&cfg.Mail.Backend, "MAIL_BACKEND")
	set(&cfg.Mail.SMTP.Addr, "SMTP_ADDR")
	set(&cfg.Mail.SMTP.Username, "SMTP_USERNAME")
	set(&cfg.Mail.SMTP.Password, "SMTP_PASSWORD")
}
