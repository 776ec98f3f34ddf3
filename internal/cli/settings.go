package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/rollover"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

func addCategory(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "manage task categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	list := func(cmd *cobra.Command) error {
		categories := env.store.Snapshot().Categories
		if oo.JSON {
			return oo.WriteJSON(cmd, categories)
		}
		for i, c := range categories {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, c)
		}
		return nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "append a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			added, err := env.store.AddCategory(cmd.Context(), name)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if !added {
				return oo.HandleError(cmd, fmt.Errorf("cli: category %q already exists", name))
			}
			return list(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "remove a category; tasks keep their label",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			removed, err := env.store.RemoveCategory(cmd.Context(), name)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if !removed {
				return oo.HandleError(cmd, fmt.Errorf("cli: no category %q", name))
			}
			return list(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "move <name> up|down",
		Short:     "move a category one place in display order",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{string(store.DirectionUp), string(store.DirectionDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := store.ParseDirection(args[len(args)-1])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			name := strings.Join(args[:len(args)-1], " ")
			moved, err := env.store.MoveCategory(cmd.Context(), name, dir)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if !moved {
				return oo.HandleError(cmd, fmt.Errorf("cli: category %q cannot move %s", name, dir))
			}
			return list(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "list categories in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd)
		},
	})

	topLevel.AddCommand(cmd)
}

func addLabel(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:       "label <block> <text>",
		Short:     "rename a time block",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{string(model.BlockMorning), string(model.BlockAfternoon), string(model.BlockEvening), string(model.BlockNight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			block, err := model.ParseBlock(args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if _, err := env.store.SetLabel(cmd.Context(), block, strings.Join(args[1:], " ")); err != nil {
				return oo.HandleError(cmd, err)
			}
			label := env.store.Snapshot().Label(block)
			if oo.JSON {
				return oo.WriteJSON(cmd, map[string]string{"block": string(block), "label": label})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", block, label)
			return err
		},
	}

	topLevel.AddCommand(cmd)
}

func addRollover(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	var force bool

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "run the daily rollover now",
		Long: Wrap80("Reopens finished repeating tasks and tags unfinished tasks of past days " +
			"as overdue. It runs once per day; --force runs it again, which changes nothing new."),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnRollover: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := rollover.NewEngine(env.store, nil).Run(cmd.Context(), force)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, res)
			}
			if !res.Ran {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "already rolled over for %s\n", res.Today)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "rolled over to %s: %d reopened, %d overdue, %d cleared\n",
				res.Today, res.Reopened, res.Tagged, res.Cleared)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Run even if today was already handled.")

	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	var user, pass string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "start a session",
		Long:        Wrap80("Prompts for the password on stdin when --password is not given."),
		Args:        cobra.NoArgs,
		Annotations: noGate(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pass == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return oo.HandleError(cmd, errors.New("cli: password required"))
				}
				pass = strings.TrimRight(line, "\r\n")
			}
			ok, err := env.store.Login(cmd.Context(), env.credentials(), user, pass)
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if !ok {
				return oo.HandleError(cmd, store.ErrBadCredentials)
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, map[string]bool{"loggedIn": true})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return err
		},
	}
	cmd.Flags().StringVarP(&user, "username", "u", "", "Username.")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "Password.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "end the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.store.Logout(cmd.Context()); err != nil {
				return oo.HandleError(cmd, err)
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, map[string]bool{"loggedIn": false})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return err
		},
	}

	topLevel.AddCommand(cmd)
}
