// Package cli is the dayblocks command line. Every command works on the same
// store the TUI uses, so edits made here show up in an open TUI.
package cli

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/dayblocks/internal/clock"
	"github.com/sandeepkv93/dayblocks/internal/config"
	"github.com/sandeepkv93/dayblocks/internal/rollover"
	"github.com/sandeepkv93/dayblocks/internal/storage"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

var ErrNotLoggedIn = errors.New("cli: not logged in, run `dayblocks login` first")

// annotationNoGate marks commands that run without a session.
const annotationNoGate = "dayblocks/no-login-gate"

// annotationOwnRollover marks commands that run the rollover themselves.
const annotationOwnRollover = "dayblocks/own-rollover"

// Env loads configuration and the store once per process.
type Env struct {
	LoadConfig func() (config.Config, error)
	OpenStore  func(ctx context.Context, cfg config.Config) (*store.Store, error)

	cfg   config.Config
	store *store.Store
}

func DefaultEnv() *Env {
	return &Env{LoadConfig: config.Load, OpenStore: OpenStore}
}

// OpenStore opens the configured backend under the resolved data directory.
func OpenStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	zone, err := cfg.Zone()
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(cfg.Backend, dir)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, backend, store.Options{
		Clock:             clock.SystemClock{},
		Zone:              zone,
		DefaultCategories: cfg.DefaultCategories,
		Logger:            log.Default(),
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return s, nil
}

func (e *Env) prepare(ctx context.Context) error {
	if e.store != nil {
		return nil
	}
	cfg, err := e.LoadConfig()
	if err != nil {
		return err
	}
	s, err := e.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	e.cfg, e.store = cfg, s
	return nil
}

// catchUp runs the once-per-load rollover. The rollover command reports its
// own run and the TUI watcher forces one at start.
func (e *Env) catchUp(cmd *cobra.Command) {
	if cmd.Annotations[annotationOwnRollover] != "" {
		return
	}
	if _, err := rollover.NewEngine(e.store, nil).Run(cmd.Context(), false); err != nil {
		log.Printf("cli: rollover: %v", err)
	}
}

func (e *Env) credentials() store.Credentials {
	return store.Credentials{Username: e.cfg.Username, Password: e.cfg.Password}
}

func (e *Env) Close() error {
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	return err
}

// Execute runs the root command with the default environment.
func Execute() error {
	env := DefaultEnv()
	defer func() {
		if err := env.Close(); err != nil {
			log.Printf("cli: close store: %v", err)
		}
	}()
	return New(env).Execute()
}

func New(env *Env) *cobra.Command {
	oo := &OutputOptions{}

	cmd := &cobra.Command{
		Use:           "dayblocks",
		Short:         Wrap80("A to-do list split into four time blocks per day."),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.HasParent() || isBuiltin(cmd) {
				return nil
			}
			if err := env.prepare(cmd.Context()); err != nil {
				return err
			}
			env.catchUp(cmd)
			if cmd.Annotations[annotationNoGate] == "" && !env.store.LoggedIn() {
				return ErrNotLoggedIn
			}
			return nil
		},
	}
	AddOutputArg(cmd, oo)

	AddCommands(cmd, env, oo)
	return cmd
}

func AddCommands(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	addUI(topLevel, env)
	addLogin(topLevel, env, oo)
	addLogout(topLevel, env, oo)
	addAdd(topLevel, env, oo)
	addQuick(topLevel, env, oo)
	addList(topLevel, env, oo)
	addDone(topLevel, env, oo)
	addRepeat(topLevel, env, oo)
	addDelete(topLevel, env, oo)
	addMove(topLevel, env, oo)
	addComment(topLevel, env, oo)
	addCategory(topLevel, env, oo)
	addLabel(topLevel, env, oo)
	addRollover(topLevel, env, oo)
}

func isBuiltin(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

func noGate() map[string]string {
	return map[string]string{annotationNoGate: "true"}
}
