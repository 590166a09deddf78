package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lifeos/internal/bootstrap"
	boardinadapter "lifeos/internal/modules/board/adapter/in"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func newNicheCmd(opts *bootstrap.Options) *cobra.Command {
	niche := &cobra.Command{Use: "niche", Short: "Manage niches"}

	niche.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List niches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				board, err := app.BoardCLI.Board(cmd.Context())
				if err != nil {
					return err
				}
				if len(board.Niches) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no niches")
					return nil
				}
				for _, n := range board.Niches {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s %s (%s)\n", n.ID, n.Glyph, n.Name, n.Color)
				}
				return nil
			})
		},
	})

	var color, icon string
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a niche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BoardCLI.CreateNiche(cmd.Context(), args[0], color, icon)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created niche #%d %s\n", out.ID, out.Name)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&color, "color", "", "hex color (default #3b82f6)")
	createCmd.Flags().StringVar(&icon, "icon", "", "icon name (default target)")

	niche.AddCommand(createCmd, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a niche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.BoardCLI.DeleteNiche(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted niche #%d\n", id)
				return nil
			})
		},
	})
	return niche
}

type taskFlags struct {
	description string
	niche       int64
	recurring   bool
	scheduled   string
}

func (f *taskFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "task description")
	cmd.Flags().Int64Var(&f.niche, "niche", 0, "niche id (defaults to the fallback niche)")
	cmd.Flags().BoolVar(&f.recurring, "recurring", false, "repeat daily")
	cmd.Flags().StringVar(&f.scheduled, "at", "", "scheduled time HH:MM")
}

// edit keeps only the flags given on the command line, so the rest of the
// task stays as stored.
func (f *taskFlags) edit(cmd *cobra.Command, title string) boardinadapter.TaskEdit {
	e := boardinadapter.TaskEdit{Title: title}
	if cmd.Flags().Changed("description") {
		e.Description = &f.description
	}
	if cmd.Flags().Changed("niche") {
		e.NicheID = &f.niche
	}
	if cmd.Flags().Changed("recurring") {
		e.Recurring = &f.recurring
	}
	if cmd.Flags().Changed("at") {
		e.ScheduledTime = &f.scheduled
	}
	return e
}

func newTaskCmd(opts *bootstrap.Options) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage tasks"}

	var listNiche int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				tasks, err := app.BoardCLI.ListTasks(cmd.Context(), listNiche)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
					return nil
				}
				for _, t := range tasks {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), taskLine(t))
				}
				return nil
			})
		},
	}
	listCmd.Flags().Int64Var(&listNiche, "niche", 0, "only tasks in this niche")

	var addFlags taskFlags
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BoardCLI.AddTask(cmd.Context(), strings.Join(args, " "), addFlags.description, addFlags.niche, addFlags.recurring, addFlags.scheduled)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "created "+taskLine(out))
				return nil
			})
		},
	}
	addFlags.bind(addCmd)

	var editFlags taskFlags
	var editTitle string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(editTitle) == "" {
				return fmt.Errorf("--title is required")
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BoardCLI.EditTask(cmd.Context(), id, editFlags.edit(cmd, editTitle))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "updated "+taskLine(out))
				return nil
			})
		},
	}
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editFlags.bind(editCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.BoardCLI.DeleteTask(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted task #%d\n", id)
				return nil
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done for today, or undo it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BoardCLI.Toggle(cmd.Context(), id)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "task #%d %s\n", out.TaskID, out.Status)
				_, _ = fmt.Fprintln(w, profileLine(out.Profile))
				if out.LevelUp {
					_, _ = fmt.Fprintf(w, "level up! now level %d\n", out.Profile.Level)
					_ = app.FeedbackCLI.Tone(cmd.Context(), "level-up", "")
				}
				return nil
			})
		},
	}

	breakdownCmd := &cobra.Command{
		Use:   "breakdown <goal>",
		Short: "Split a goal into subtasks and create them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BoardCLI.BreakDown(cmd.Context(), strings.Join(args, " "))
				for _, t := range out.Created {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "created "+taskLine(t))
				}
				if err != nil {
					return fmt.Errorf("created %d of %d: %w", len(out.Created), out.Total, err)
				}
				return nil
			})
		},
	}

	draftCmd := &cobra.Command{
		Use:   "draft <text>",
		Short: "Parse free text into a task draft without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BoardCLI.Draft(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "title:     %s\n", out.Title)
				_, _ = fmt.Fprintf(w, "recurring: %t\n", out.Recurring)
				if out.ScheduledTime != "" {
					_, _ = fmt.Fprintf(w, "at:        %s\n", out.ScheduledTime)
				}
				if out.DueDate != "" {
					_, _ = fmt.Fprintf(w, "due:       %s\n", out.DueDate)
				}
				niche := out.NicheName
				if !out.Matched {
					niche += " (fallback)"
				}
				_, _ = fmt.Fprintf(w, "niche:     #%d %s\n", out.NicheID, niche)
				return nil
			})
		},
	}

	task.AddCommand(listCmd, addCmd, editCmd, deleteCmd, toggleCmd, breakdownCmd, draftCmd)
	return task
}

func newProfileCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the gamification profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				p, err := app.BoardCLI.Profile(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, profileLine(p))
				if len(p.Inventory) > 0 {
					_, _ = fmt.Fprintf(w, "inventory: %s\n", strings.Join(p.Inventory, ", "))
				}
				if p.TelegramChatID != "" {
					_, _ = fmt.Fprintf(w, "telegram:  %s\n", p.TelegramChatID)
				}
				return nil
			})
		},
	}
}

func newLinkCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "link [chat-id]",
		Short: "Link a Telegram chat for notifications",
		Long:  "Links the given chat id. Without one, the chat id of the embedding host user is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				chatID := ""
				if len(args) == 1 {
					chatID = args[0]
				} else {
					id, err := app.HostCLI.ChatID()
					if err != nil {
						return err
					}
					chatID = id
				}
				p, err := app.BoardCLI.LinkTelegram(cmd.Context(), chatID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "linked chat %s\n", p.TelegramChatID)
				return nil
			})
		},
	}
}

func newStatsCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.BoardCLI.Stats(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "today:  %d/%d (%.0f%%)\n", s.CompletedToday, s.TotalActiveToday, s.CompletionRateToday*100)
				_, _ = fmt.Fprintf(w, "7 days: %d\n", s.CompletedLast7Days)
				_, _ = fmt.Fprintf(w, "streak: %d\n", s.Streak)
				return nil
			})
		},
	}
}
