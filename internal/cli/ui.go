package cli

import (
	"context"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/dayblocks/internal/rollover"
	"github.com/sandeepkv93/dayblocks/internal/storage"
	"github.com/sandeepkv93/dayblocks/internal/update"
)

func addUI(topLevel *cobra.Command, env *Env) {
	cmd := &cobra.Command{
		Use:         "ui",
		Short:       "open the terminal UI",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoGate: "true", annotationOwnRollover: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			logFile := env.cfg.LogFile
			if logFile == "" {
				dir, err := env.cfg.ResolveDataDir()
				if err != nil {
					return err
				}
				logFile = filepath.Join(dir, "dayblocks.log")
			}
			f, err := tea.LogToFile(logFile, "dayblocks")
			if err != nil {
				return err
			}
			defer f.Close()

			s := env.store
			rollovers := make(chan rollover.Result, 4)
			watcher := rollover.NewWatcher(rollover.NewEngine(s, log.Default()), rollover.WatcherOptions{
				PollInterval:    env.cfg.PollInterval,
				SchedulerBuffer: env.cfg.SchedulerBuffer,
				OnRollover: func(res rollover.Result) {
					select {
					case rollovers <- res:
					default:
					}
				},
			})
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop()

			var changes <-chan storage.Event
			if disk, ok := s.Backend().(*storage.DiskvBackend); ok {
				changes, err = disk.Watch(ctx)
				if err != nil {
					log.Printf("cli: watch %s: %v", disk.BasePath(), err)
				}
			}

			m := update.NewModel(s, update.Options{
				Context:        ctx,
				Credentials:    env.credentials(),
				NoticeDuration: env.cfg.Notice(),
				Rollovers:      rollovers,
				Changes:        changes,
			})
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	topLevel.AddCommand(cmd)
}
