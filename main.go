package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobboard/config"
	"jobboard/handler"
	"jobboard/notify"
	"jobboard/store"

	"github.com/gofrs/flock"
	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", envOr("JOBBOARD_CONFIG", "config.yml"), "path to the YAML config file")
	flag.Usage = usage
	flag.Parse()

	lg := log.New("jobboard")
	lg.SetHeader("${time_rfc3339} ${level} ${prefix}")

	cfg, err := config.Load(*configPath)
	if err != nil {
		lg.Fatalf("config load failed (%s): %v", *configPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		lg.Fatal(err)
	}
	if cfg.Env == config.DevEnv {
		lg.SetLevel(log.DEBUG)
	}

	args := flag.Args()
	if len(args) == 0 || args[0] == "serve" {
		if err := serve(cfg, lg); err != nil {
			lg.Fatal(err)
		}
		return
	}
	if err := manage(context.Background(), cfg, lg, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, lg *log.Logger) error {
	s, err := openStore(cfg, lg)
	if err != nil {
		return err
	}
	defer s.Close()

	mailer, err := newMailer(cfg, lg)
	if err != nil {
		return err
	}
	n, err := notify.New(cfg.Mail.From, mailer)
	if err != nil {
		return err
	}

	h := &handler.Handler{
		Store:    s,
		Notifier: n,
		Settings: handler.Settings{
			JobsOnIndex:       cfg.Index.Jobs,
			ApplicantsOnIndex: cfg.Index.Applicants,
			JobsPerPage:       cfg.PerPage.Jobs,
			ApplicantsPerPage: cfg.PerPage.Applicants,
			ExpireDays:        cfg.Posts.ExpireDays,
		},
	}
	e, err := handler.NewEcho(h)
	if err != nil {
		return err
	}
	e.Logger = lg
	e.Use(middleware.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if cfg.HTTP.Address != "" {
			lg.Infof("listening on %s (db=%s)", cfg.HTTP.Address, cfg.DB.Driver)
			err = e.Start(cfg.HTTP.Address)
		} else {
			// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
			e.AutoTLSManager.Cache = autocert.DirCache(cfg.HTTP.CertCache)
			if cfg.HTTP.TLSHost != "" {
				e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.HTTP.TLSHost)
			}
			e.Pre(middleware.HTTPSRedirect())
			lg.Infof("listening on :443 with automatic TLS (db=%s)", cfg.DB.Driver)
			err = e.StartAutoTLS(":443")
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore opens the configured database and runs the schema migrations.
// For sqlite a lock file next to the database serializes migrations
// between processes.
func openStore(cfg config.Config, lg *log.Logger) (*store.Store, error) {
	if cfg.DB.Driver == "sqlite" {
		fl := flock.New(sqlitePath(cfg.DB.URL) + ".lock")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
		if err != nil {
			return nil, fmt.Errorf("lock database: %w", err)
		}
		if !locked {
			return nil, errors.New("database is locked by another jobboard process")
		}
		defer fl.Unlock()
	}

	s, err := store.Open(cfg.DB.Driver, cfg.DB.URL)
	if err != nil {
		return nil, err
	}
	lg.Debug("running database schema migrations")
	err = s.Migrate()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		lg.Debug("no database schema migration ran, schema already at latest version")
	case err != nil:
		_ = s.Close()
		return nil, fmt.Errorf("database schema migration: %w", err)
	}
	return s, nil
}

// sqlitePath turns a sqlite DSN into the database file path.
func sqlitePath(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	return dsn
}

func newMailer(cfg config.Config, lg *log.Logger) (notify.Mailer, error) {
	if cfg.Mail.Backend != "smtp" {
		return notify.ConsoleMailer{Logger: lg}, nil
	}
	pw, err := config.SMTPPassword(cfg)
	if err != nil {
		return nil, err
	}
	return notify.SMTPMailer{
		Addr:     cfg.Mail.SMTP.Addr,
		Username: cfg.Mail.SMTP.Username,
		Password: pw,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
