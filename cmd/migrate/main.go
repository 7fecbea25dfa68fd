// Command migrate manages the PostgreSQL schema of the POS backend.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/edusabi/mobileFacul/internal/infrastructure/config"
	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/infrastructure/migration"
	"github.com/edusabi/mobileFacul/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type options struct {
	dir      string
	config   string
	logLevel string
	embedded bool
}

func main() {
	var opts options
	flags := flag.NewFlagSet("migrate", flag.ExitOnError)
	flags.StringVar(&opts.dir, "path", "", "migrations directory (default ./migrations)")
	flags.StringVar(&opts.config, "config", "", "config file (default ./config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.embedded, "embedded", false, "use the migrations compiled into the binary")
	flags.Usage = func() { usage(os.Stderr, flags) }
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		flags.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      opts.logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	env := &runEnv{log: log, out: os.Stdout, now: timeNow, src: migration.FromFS(migrations.FS)}
	if !opts.embedded {
		env.dir = resolveDir(opts.dir)
		env.src = migration.FromDir(env.dir)
	}
	log.Debug("Migration command", zap.String("command", args[0]), zap.Stringer("source", env.src))

	if cmd.database {
		m, closeDB, err := openMigrator(opts.config, env.src, log)
		if err != nil {
			log.Fatal("Cannot open migrator", zap.Error(err))
		}
		defer closeDB()
		env.migrator = m
	}

	if err := cmd.run(env, args[1:]); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(os.Stderr, "usage: migrate %s %s\n", args[0], cmd.args)
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func openMigrator(configPath string, src migration.Source, log *zap.Logger) (*migration.Migrator, func(), error) {
	load := config.Load
	if configPath != "" {
		load = func() (*config.Config, error) { return config.LoadFile(configPath) }
	}
	cfg, err := load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", cfg.Database.Host, err)
	}
	m, err := migration.Open(db, src, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, func() { _ = m.Close() }, nil
}

// resolveDir prefers ./migrations and falls back to the repository layout
// next to the binary.
func resolveDir(dir string) string {
	if dir == "" {
		dir = defaultMigrationsDir
		if _, err := os.Stat(dir); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsDir)
				if _, err := os.Stat(candidate); err == nil {
					dir = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func usage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: migrate [flags] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandOrder {
		c := commands[name]
		fmt.Fprintf(w, "  %-22s %s\n", name+" "+c.args, c.help)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The database is read from POS_DATABASE_HOST, POS_DATABASE_PORT, POS_DATABASE_USER,")
	fmt.Fprintln(w, "POS_DATABASE_PASSWORD, POS_DATABASE_DBNAME and POS_DATABASE_SSLMODE.")
}
