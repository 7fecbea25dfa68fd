package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/edusabi/mobileFacul/internal/infrastructure/migration"
	"go.uber.org/zap"
)

var timeNow = time.Now

// runEnv is what a command may touch. migrator is nil for commands that do
// not need the database.
type runEnv struct {
	log      *zap.Logger
	out      io.Writer
	now      func() time.Time
	dir      string
	src      migration.Source
	migrator *migration.Migrator
}

// usageError makes main print the argument synopsis of the command
type usageError string

func (e usageError) Error() string { return string(e) }

type command struct {
	args     string
	help     string
	database bool
	run      func(env *runEnv, args []string) error
}

var commandOrder = []string{"up", "down", "step", "goto", "version", "force", "drop", "create", "list"}

var commands = map[string]command{
	"up": {help: "apply all pending migrations", database: true,
		run: func(env *runEnv, _ []string) error { return env.migrator.Up() }},
	"down": {help: "roll back all migrations", database: true,
		run: func(env *runEnv, _ []string) error { return env.migrator.Down() }},
	"step": {args: "<n>", help: "apply n migrations, negative rolls back", database: true,
		run: func(env *runEnv, args []string) error {
			n, err := intArg(args)
			if err != nil {
				return err
			}
			return env.migrator.Steps(n)
		}},
	"goto": {args: "<version>", help: "migrate to a version", database: true,
		run: func(env *runEnv, args []string) error {
			n, err := intArg(args)
			if err != nil || n < 0 {
				return usageError("version must be a non-negative number")
			}
			return env.migrator.GoTo(uint(n))
		}},
	"version": {help: "print the applied version", database: true, run: printVersion},
	"force": {args: "<version>", help: "record a version without running it", database: true,
		run: func(env *runEnv, args []string) error {
			n, err := intArg(args)
			if err != nil {
				return err
			}
			return env.migrator.Force(n)
		}},
	"drop": {args: "-confirm", help: "drop every table, sales included", database: true,
		run: func(env *runEnv, args []string) error {
			if !slices.Contains(args, "-confirm") && !slices.Contains(args, "--confirm") {
				return usageError("drop needs -confirm")
			}
			return env.migrator.Drop()
		}},
	"create": {args: "<name> [description]", help: "write the next numbered migration pair", run: create},
	"list":   {help: "list available migrations", run: list},
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, usageError("missing number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, usageError(fmt.Sprintf("%q is not a number", args[0]))
	}
	return n, nil
}

func printVersion(env *runEnv, _ []string) error {
	st, err := env.migrator.Status()
	if err != nil {
		return err
	}
	switch {
	case st.Version == 0:
		fmt.Fprintln(env.out, "no migrations applied")
	case st.Dirty:
		fmt.Fprintf(env.out, "%d (dirty, fix it and run force %d)\n", st.Version, st.Version)
	default:
		fmt.Fprintln(env.out, st.Version)
	}
	return nil
}

func create(env *runEnv, args []string) error {
	if env.dir == "" {
		return errors.New("create writes files; run it without -embedded")
	}
	if len(args) == 0 {
		return usageError("missing migration name")
	}
	p, err := migration.Create(env.dir, args[0], strings.Join(args[1:], " "), env.now())
	if err != nil {
		return err
	}
	env.log.Info("Migration created",
		zap.String("version", p.VersionString()),
		zap.String("up", p.UpPath),
		zap.String("down", p.DownPath))
	return nil
}

func list(env *runEnv, _ []string) error {
	names, err := migration.List(env.src)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(env.out, "no migrations found")
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(env.out, n)
	}
	return nil
}
