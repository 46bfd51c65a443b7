package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/erazemk/wms/internal/api"
	"github.com/erazemk/wms/internal/auth"
	"github.com/erazemk/wms/internal/blob"
	"github.com/erazemk/wms/internal/config"
	"github.com/erazemk/wms/internal/provider"
	"github.com/erazemk/wms/internal/service"
	"github.com/erazemk/wms/internal/store"
)

// levelRouter is a slog.Handler that routes records below ERROR to stdout and
// ERROR+ to stderr.
type levelRouter struct {
	level  slog.Level
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. If logPath is non-empty, all
// levels are also written to that file. Returns a cleanup function that closes
// the log file (if opened).
func setupLogger(level, logPath string) (func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		level:  lvl,
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

type flags struct {
	configPath string
	dbPath     string
	addr       string
	operator   string
	logPath    string
	set        map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	fs := flag.NewFlagSet("wms", flag.ContinueOnError)
	f := &flags{set: make(map[string]bool)}

	fs.StringVar(&f.configPath, "config", "", "")
	fs.StringVar(&f.configPath, "c", "", "")
	fs.StringVar(&f.dbPath, "db", "", "")
	fs.StringVar(&f.dbPath, "d", "", "")
	fs.StringVar(&f.addr, "addr", "", "")
	fs.StringVar(&f.addr, "a", "", "")
	fs.StringVar(&f.operator, "user", "", "")
	fs.StringVar(&f.operator, "u", "", "")
	fs.StringVar(&f.logPath, "log", "", "")
	fs.StringVar(&f.logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: wms [flags]

Flags:
  -c, -config <path>      config file (default: wms.{yaml,toml,json} if present)
  -d, -db <path>          SQLite database path (default: wms.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        operator display name (default: Ariel Parcon)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Every setting can also be given as a WMS_ environment variable, e.g.
WMS_STORAGE_DRIVER=postgres WMS_STORAGE_POSTGRES_DSN=postgres://...
`)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	names := map[string]string{"d": "db", "a": "addr", "u": "user", "l": "log", "c": "config"}
	fs.Visit(func(fl *flag.Flag) {
		name := fl.Name
		if long, ok := names[name]; ok {
			name = long
		}
		f.set[name] = true
	})
	return f, nil
}

// apply overrides cfg with the flags given on the command line.
func (f *flags) apply(cfg *config.Config) {
	if f.set["db"] {
		cfg.Storage.Driver = string(store.DriverSQLite)
		cfg.Storage.SQLitePath = f.dbPath
	}
	if f.set["addr"] {
		cfg.Server.Addr = f.addr
	}
	if f.set["user"] {
		cfg.Operator.Name = f.operator
	}
	if f.set["log"] {
		cfg.Log.File = f.logPath
	}
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	f.apply(cfg)

	closeLog, err := setupLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	backend, err := store.Open(ctx, cfg.StoreConfig())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()
	slog.Info("store ready", "driver", cfg.Storage.Driver)

	records := store.NewRecords(backend)

	if err := ensureOperatorPassword(ctx, records, cfg); err != nil {
		return err
	}

	jwtSecret, err := store.GetJWTSecret(ctx, records)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	blobs, err := blob.Open(ctx, cfg.BlobConfig())
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}
	slog.Info("blob store ready", "driver", cfg.Blob.Driver)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.New(service.Deps{Records: records, Metrics: service.NewMetrics(reg)}, cfg.Assets.BaseURL)
	p := provider.New(svc, cfg.User())
	p.Refresh(ctx)

	stats := p.Stats()
	slog.Info("state loaded",
		"inventory_items", stats.TotalInventoryItems,
		"pending_prs", stats.PendingPRs,
		"active_pos", stats.ActivePOs,
		"assets_tagged", stats.AssetsTagged,
	)

	router := api.NewRouter(api.Deps{
		Provider:  p,
		Services:  svc,
		Records:   records,
		Blobs:     blobs,
		JWTSecret: jwtSecret,
		Operator:  cfg.User(),
		Metrics:   reg,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.LoggingMiddleware(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Server.Addr, "operator", cfg.Operator.Email)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing store")
	return nil
}

// ensureOperatorPassword creates the operator password on first start and
// prints it once.
func ensureOperatorPassword(ctx context.Context, records *store.Records, cfg *config.Config) error {
	hash, err := store.GetOperatorPasswordHash(ctx, records)
	if err != nil {
		return fmt.Errorf("reading operator password: %w", err)
	}
	if hash != "" {
		return nil
	}

	password, err := auth.GeneratePassword(16)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}
	hash, err = auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := store.SetOperatorPasswordHash(ctx, records, hash); err != nil {
		return fmt.Errorf("storing operator password: %w", err)
	}

	printInitResult(cfg, password)
	return nil
}

// printInitResult prints the first-start credentials to stdout.
func printInitResult(cfg *config.Config, password string) {
	fmt.Println("Operator account created:")
	fmt.Printf("  Name:     %s\n", cfg.Operator.Name)
	fmt.Printf("  Email:    %s\n", strings.ToLower(cfg.Operator.Email))
	fmt.Printf("  Role:     %s\n", cfg.Operator.Role)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("It can be changed after logging in.")
	fmt.Println()
}
