package cli

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addComment(topLevel *cobra.Command, env *Env, oo *OutputOptions) {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "manage a task's comments",
		Long: Wrap80(`A comment that is exactly "!repeat" makes the task repeat every day; ` +
			`"!end" stops it. Both are kept as ordinary comments too.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <task id> <text>",
		Short: "append a comment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			_, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			comment, ok, err := s.AddComment(cmd.Context(), task.ID, strings.Join(args[1:], " "))
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if !ok {
				return oo.HandleError(cmd, fmt.Errorf("cli: comment text is blank"))
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, comment)
			}
			_, updated, _ := s.FindTask(task.ID)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "comment %s added to %q\n", shortID(comment.ID), task.Text)
			if updated.Recurring != task.Recurring {
				if updated.Recurring {
					_, _ = fmt.Fprintln(out, "task now repeats daily")
				} else {
					_, _ = fmt.Fprintln(out, "task no longer repeats")
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <task id> <comment id>",
		Aliases: []string{"delete"},
		Short:   "delete a comment",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			_, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			comment, err := resolveComment(s.Comments(task.ID), args[1])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			if _, err := s.DeleteComment(cmd.Context(), task.ID, comment.ID); err != nil {
				return oo.HandleError(cmd, err)
			}
			if oo.JSON {
				return oo.WriteJSON(cmd, map[string]string{"deleted": comment.ID})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted comment %s\n", shortID(comment.ID))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "ls <task id>",
		Aliases: []string{"list"},
		Short:   "list a task's comments, oldest first",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.store
			_, task, err := resolveTask(s.Snapshot(), args[0])
			if err != nil {
				return oo.HandleError(cmd, err)
			}
			comments := s.Comments(task.ID)
			if oo.JSON {
				return oo.WriteJSON(cmd, comments)
			}
			out := cmd.OutOrStdout()
			title(out, task.Text, len(comments))
			if len(comments) == 0 {
				none(out)
				return nil
			}
			loc := s.Zone().Location()
			tbl := uitable.New()
			tbl.Separator = "  "
			for _, c := range comments {
				tbl.AddRow(shortID(c.ID), c.CreatedAt.In(loc).Format("2006-01-02 15:04"), c.Text)
			}
			_, err = fmt.Fprintln(out, tbl)
			return err
		},
	})

	topLevel.AddCommand(cmd)
}
