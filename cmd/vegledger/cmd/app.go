package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/pigeonworks-llc/vegledger/pkg/auth"
	"github.com/pigeonworks-llc/vegledger/pkg/config"
	"github.com/pigeonworks-llc/vegledger/pkg/db"
	"github.com/pigeonworks-llc/vegledger/pkg/kv"
	"github.com/pigeonworks-llc/vegledger/pkg/ledger"
	"github.com/pigeonworks-llc/vegledger/pkg/pathutil"
	"github.com/pigeonworks-llc/vegledger/pkg/session"
)

const (
	maxPasswordAttempts = 3
	retryInterval       = 2 * time.Second
)

// app bundles what every logged-in command needs.
type app struct {
	cfg     *config.Config
	paths   *pathutil.PathResolver
	store   kv.Store
	session *session.Session
}

// openApp loads configuration, signs the user in and opens the session.
// The caller must Close the returned app.
func openApp(ctx context.Context) (*app, error) {
	slog.Debug("Loading configuration")

	cfg, err := config.Load(getConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// .env may set DEBUG or LOG_LEVEL.
	setupLogging(cfg.Debug, cfg.LogLevel)

	err = cfg.Validate(
		[]string{"storage", "dataDir"},
		[]string{"auth", "usersFile"},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	user, err := login(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	ext := ".db"
	if cfg.Storage.Driver == config.DriverBolt {
		ext = ".bolt"
	}
	paths := pathutil.New(pathutil.Config{
		DataDir:      cfg.Storage.DataDir,
		DatabasePath: cfg.Storage.DBPath,
		DatabaseExt:  ext,
		ExportDir:    cfg.Storage.ExportDir,
	})

	store, err := openStore(cfg, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sess, err := session.Open(ctx, store, user, ledger.Today())
	if err != nil {
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	slog.Info("Signed in", "user", user.Username, "role", user.Role)
	return &app{cfg: cfg, paths: paths, store: store, session: sess}, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.session.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}
}

func openStore(cfg *config.Config, paths *pathutil.PathResolver) (kv.Store, error) {
	if ephemeral {
		slog.Debug("Using in-memory store")
		return kv.NewMemoryStore(), nil
	}

	dbPath := paths.GetDatabasePath()
	slog.Debug("Opening database", "driver", cfg.Storage.Driver, "path", dbPath)

	switch cfg.Storage.Driver {
	case config.DriverBolt:
		return kv.OpenBolt(dbPath)
	case config.DriverSQLite:
		conn, err := db.Open(dbPath)
		if err != nil {
			return nil, err
		}
		return db.NewKVStore(conn), nil
	}
	return nil, fmt.Errorf("unknown store driver: %s", cfg.Storage.Driver)
}

// login resolves credentials from flags, the environment or a prompt.
func login(ctx context.Context, cfg *config.Config) (auth.User, error) {
	table, err := auth.LoadUserTable(cfg.Auth.UsersFile)
	if err != nil {
		return auth.User{}, err
	}

	name := username
	if name == "" {
		name = cfg.Auth.Username
	}
	if name == "" {
		return auth.User{}, errors.New("no username given (use --user or VEGLEDGER_USER)")
	}

	pass := password
	if pass == "" {
		pass = cfg.Auth.Password
	}
	if pass != "" {
		return table.Authenticate(name, pass)
	}

	// Interactive: a few tries, spaced out after the first.
	throttled := auth.NewThrottled(table, retryInterval, 1)
	for attempt := 1; ; attempt++ {
		pass, err = promptPassword(fmt.Sprintf("Password for %s: ", name))
		if err != nil {
			return auth.User{}, err
		}
		user, err := throttled.AuthenticateContext(ctx, name, pass)
		if !errors.Is(err, auth.ErrInvalidCredentials) || attempt == maxPasswordAttempts {
			return user, err
		}
		fmt.Fprintln(os.Stderr, "Invalid username or password, try again.")
	}
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password given and stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}
