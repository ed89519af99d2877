package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Index.Jobs)
	assert.Equal(t, 15, cfg.PerPage.Applicants)
	assert.Equal(t, 30, cfg.Posts.ExpireDays)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "./jobboard.db", cfg.DB.URL)
	assert.NoError(t, Validate(cfg))
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
env: dev
index:
  jobs: 3
per_page:
  jobs: 10
posts:
  expire_days: 7
mail:
  from: board@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("JOBBOARD_FROM_EMAIL", "env@example.com")
	t.Setenv("DB_URL", "file::memory:")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DevEnv, cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 3, cfg.Index.Jobs)
	assert.Equal(t, 5, cfg.Index.Applicants)
	assert.Equal(t, 10, cfg.PerPage.Jobs)
	assert.Equal(t, 7, cfg.Posts.ExpireDays)
	assert.Equal(t, "env@example.com", cfg.Mail.From)
	assert.Equal(t, "file::memory:", cfg.DB.URL)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("index: [nope"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.PerPage.Jobs = 0
	cfg.Posts.ExpireDays = -1
	cfg.DB.Driver = "mysql"
	cfg.Mail.Backend = "smtp"
	cfg.Mail.From = "nope"

	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{
		"per_page.jobs must be > 0",
		"posts.expire_days must be >= 0",
		"db.driver must be sqlite or postgres",
		"mail.from must be a valid address",
		"mail.smtp.addr is required",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateWantsBareFromAddress(t *testing.T) {
	cfg := Default()
	cfg.Mail.From = "Job Board <jobs@example.com>"
	assert.ErrorContains(t, Validate(cfg), "mail.from must be a valid address")

	cfg.Mail.From = "jobs@example.com"
	assert.NoError(t, Validate(cfg))
}

func TestSMTPPassword(t *testing.T) {
	keyring.MockInit()

	cfg := Default()
	pw, err := SMTPPassword(cfg)
	require.NoError(t, err)
	assert.Empty(t, pw)

	cfg.Mail.SMTP.Addr = "smtp.example.com:587"
	cfg.Mail.SMTP.Username = "board"
	_, err = SMTPPassword(cfg)
	assert.Error(t, err)

	require.NoError(t, SetSMTPPassword(cfg, "s3cret"))
	pw, err = SMTPPassword(cfg)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	cfg.Mail.SMTP.Password = "from-env"
	pw, err = SMTPPassword(cfg)
	require.NoError(t, err)
	assert.Equal(t, "from-env", pw)
}
