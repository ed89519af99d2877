package config

import (
	"errors"
	"strings"

	"jobboard/domain"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.Env != DevEnv && cfg.Env != ProEnv {
		errs = append(errs, "env must be dev or pro")
	}
	if cfg.Index.Jobs < 0 {
		errs = append(errs, "index.jobs must be >= 0")
	}
	if cfg.Index.Applicants < 0 {
		errs = append(errs, "index.applicants must be >= 0")
	}
	if cfg.PerPage.Jobs <= 0 {
		errs = append(errs, "per_page.jobs must be > 0")
	}
	if cfg.PerPage.Applicants <= 0 {
		errs = append(errs, "per_page.applicants must be > 0")
	}
	if cfg.Posts.ExpireDays < 0 {
		errs = append(errs, "posts.expire_days must be >= 0")
	}

	switch cfg.DB.Driver {
	case "sqlite":
	case "postgres":
		if cfg.DB.URL == "" {
			errs = append(errs, "db.url is required when db.driver=postgres")
		}
	default:
		errs = append(errs, "db.driver must be sqlite or postgres")
	}

	if !domain.ValidEmail(cfg.Mail.From) {
		errs = append(errs, "mail.from must be a valid address")
	}
	switch cfg.Mail.Backend {
	case "console":
	case "smtp":
		if strings.TrimSpace(cfg.Mail.SMTP.Addr) == "" {
			errs = append(errs, "mail.smtp.addr is required when mail.backend=smtp")
		}
	default:
		errs = append(errs, "mail.backend must be console or smtp")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
