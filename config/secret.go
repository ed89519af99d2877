package config

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the jobboard secrets in the OS keychain.
const KeyringService = "jobboard"

// SMTPPassword prefers SMTP_PASSWORD and falls back to the keychain entry
// for the SMTP username. No username means no auth.
func SMTPPassword(cfg Config) (string, error) {
	if cfg.Mail.SMTP.Password != "" {
		return cfg.Mail.SMTP.Password, nil
	}
	user := strings.TrimSpace(cfg.Mail.SMTP.Username)
	if user == "" {
		return "", nil
	}
	pw, err := keyring.Get(KeyringService, SMTPKeyringAccount(cfg))
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	return "", errors.New("SMTP password not found (set it in keychain or via SMTP_PASSWORD)")
}

func SetSMTPPassword(cfg Config, password string) error {
	if strings.TrimSpace(cfg.Mail.SMTP.Username) == "" {
		return errors.New("mail.smtp.username is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, SMTPKeyringAccount(cfg), password)
}

func SMTPKeyringAccount(cfg Config) string {
	return "jobboard:smtp:" + cfg.Mail.SMTP.Username + "@" + cfg.Mail.SMTP.Addr
}
