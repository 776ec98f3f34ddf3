package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/quickentry"
	"github.com/sandeepkv93/dayblocks/internal/sections"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

// AddOptions
type AddOptions struct {
	Date     string
	Block    string
	Category string
	Urgency  string
	Repeat   bool
}

func addAdd(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	ao := &AddOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "add a task to a day and time block",
		Example: `
dayblocks add buy groceries
dayblocks add --date 2026-05-20 --block evening --urgency high call mom
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			now := s.Clock().Now()
			date := s.Zone().Today(now)
			if ao.Date != "" {
				d, err := model.ParseDateKey(ao.Date)
				if err != nil {
					return oo.HandleError(cmd, err)
				}
				date = d
			}
			block := s.Zone().BlockAt(now)
			if ao.Block != "" {
				b, err := model.ParseBlock(ao.Block)
				if err != nil {
					return oo.HandleError(cmd, err)
				}
				block = b
			}
			extras, err := taskExtras(s.Snapshot(), ao.Category, ao.Urgency, ao.Repeat)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			task, ok, err := s.AddTask(cmd.Context(), date, block, strings.Join(args, " "), extras)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if !ok {
				return oo.HandleError(cmd, errors.New("cli: task text is blank"))
			}
			return printAdded(cmd, oo, s.Snapshot(), date, block, task)
		},
	}

	cmd.Flags().StringVar(&ao.Date, "date", "", `Day to file the task under, example: --date="2026-05-18". Defaults to today.`)
	cmd.Flags().StringVarP(&ao.Block, "block", "b", "", "Time block: morning, afternoon, evening or night. Defaults to the current one.")
	cmd.Flags().StringVarP(&ao.Category, "category", "c", "", "Category. Defaults to the first configured one.")
	cmd.Flags().StringVarP(&ao.Urgency, "urgency", "u", "", "Urgency: low, medium or high.")
	cmd.Flags().BoolVar(&ao.Repeat, "repeat", false, "Repeat the task every day.")

	topLevel.AddCommand(cmd)
}

// taskExtras validates the optional category and urgency flags.
func taskExtras(snap store.Snapshot, category, urgency string, repeat bool) (store.Extras, error) {
	extras := store.Extras{Category: category, Recurring: repeat}
	if urgency != "" {
		u, err := model.ParseUrgency(urgency)
		if err != nil {
			return store.Extras{}, err
		}
		extras.Urgency = u
	}
	if category != "" && !snap.HasCategory(category) {
		return store.Extras{}, fmt.Errorf("cli: unknown category %q", category)
	}
	return extras, nil
}

func addQuick(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	var category, urgency string

	cmd := &cobra.Command{
		Use:   `quick "<text>, <MMDD>"`,
		Short: "add a task with the quick-entry shorthand",
		Long: Wrap80(`Quick entry takes "text, MMDD" where MMDD is a three or four digit ` +
			`month and day in the current year. The task lands in the time block of the current hour.`),
		Example: `
dayblocks quick "Finish project, 518"
dayblocks quick "Dentist, 1203"
dayblocks quick -c Work -u high "Ship release, 601"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			extras, err := taskExtras(s.Snapshot(), category, urgency, false)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			task, block, err := quickentry.Submit(cmd.Context(), s, strings.Join(args, " "), extras)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			return printAdded(cmd, oo, s.Snapshot(), task.DueDate, block, task)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category. Defaults to the first configured one.")
	cmd.Flags().StringVarP(&urgency, "urgency", "u", "", "Urgency: low, medium or high.")

	topLevel.AddCommand(cmd)
}

func printAdded(cmd *cobra.Command, oo *OutputOptions, snap store.Snapshot, date model.DateKey, block model.Block, task model.Task) error {
	if oo.JSON {
		return oo.WriteJSON(cmd, entryJSON{Date: date, Block: block, Task: task})
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "added %s %q to %s (%s)\n", shortID(task.ID), task.Text, date, snap.Label(block))
	return err
}

func addList(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list tasks by section, or one day by block",
		Example: `
dayblocks list
dayblocks list --date 2026-05-18
dayblocks list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := env.store
			snap := s.Snapshot()
			if date != "" {
				d, err := model.ParseDateKey(date)
				if err != nil {
					return oo.HandleError(cmd, err)
				}
				if oo.JSON {
					return oo.WriteJSON(cmd, dayJSON(snap, d))
				}
				printDay(cmd.OutOrStdout(), snap, d)
				return nil
			}
			classified := sections.Classify(snap, s.Clock().Now(), s.Zone())
			if oo.JSON {
				return oo.WriteJSON(cmd, sectionsJSON(snap, classified))
			}
			printSections(cmd.OutOrStdout(), snap, classified)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", `Show one day grouped by time block, example: --date="2026-05-18".`)

	topLevel.AddCommand(cmd)
}

func addDone(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"toggle"},
		Short:   "toggle a task between open and done",
		Long:    Wrap80("Toggling moves the task to the end of its block, in either direction."),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			loc, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			updated, _, err := s.ToggleDone(cmd.Context(), loc.Date, loc.Block, task.ID)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, entryJSON{Date: loc.Date, Block: loc.Block, Task: updated})
			}
			state := "open"
			if updated.Done {
				state = "done"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", state, shortID(updated.ID), updated.Text)
			return err
		},
	}

	topLevel.AddCommand(cmd)
}

func addRepeat(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	var off bool

	cmd := &cobra.Command{
		Use:   "repeat <task id>",
		Short: "make a task repeat daily",
		Long:  Wrap80("A repeating task is reopened every morning. --off stops it, like the !end comment."),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			loc, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if _, err := s.SetRecurring(cmd.Context(), task.ID, !off); err != nil {
				return oo.HandleError(cmd, err)
			}
			_, updated, _ := s.FindTask(task.ID)
			if oo.JSON {
				return oo.WriteJSON(cmd, entryJSON{Date: loc.Date, Block: loc.Block, Task: updated})
			}
			verb := "repeats daily"
			if !updated.Recurring {
				verb = "no longer repeats"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", verb, shortID(updated.ID), updated.Text)
			return err
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Stop repeating.")

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:     "delete <task id>",
		Aliases: []string{"rm"},
		Short:   "delete a task and its comments",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			loc, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if _, err := s.DeleteTask(cmd.Context(), loc.Date, loc.Block, task.ID); err != nil {
				return oo.HandleError(cmd, err)
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, map[string]string{"deleted": task.ID})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %q\n", shortID(task.ID), task.Text)
			return err
		},
	}

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:       "move <task id> up|down",
		Short:     "move a task one place within its block",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(store.DirectionUp), string(store.DirectionDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			dir, err := store.ParseDirection(args[1])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			loc, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			moved, err := s.MoveTask(cmd.Context(), loc.Date, loc.Block, loc.Index, dir)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			snap := s.Snapshot()
			if oo.JSON {
				return oo.WriteJSON(cmd, map[string]any{"moved": moved, "tasks": snap.List(loc.Date, loc.Block)})
			}
			if !moved {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%q is already at the %s of its block\n", task.Text, edgeName(dir))
				return err
			}
			printBlock(cmd.OutOrStdout(), snap, loc.Date, loc.Block)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func edgeName(dir store.Direction) string {
	if dir == store.DirectionUp {
		return "top"
	}
	return "bottom"
}
