package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"lifeos/internal/bootstrap"
	boarddto "lifeos/internal/modules/board/dto"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &bootstrap.Options{}

	root := &cobra.Command{
		Use:           "lifeos",
		Short:         "Life OS task board, shop and command center",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&opts.APIBase, "api", "", "API base URL")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&opts.InitData, "tg-init-data", "", "host launch payload (defaults to $"+bootstrap.EnvInitData+")")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newNicheCmd(opts))
	root.AddCommand(newTaskCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newLinkCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newShopCmd(opts))
	root.AddCommand(newAICmd(opts))
	root.AddCommand(newLabCmd(opts))
	root.AddCommand(newSystemCmd(opts))
	root.AddCommand(newOpsCmd(opts))
	root.AddCommand(newToneCmd(opts))
	return root
}

// withApp builds the application for one command and closes it afterwards.
func withApp(opts *bootstrap.Options, run func(app *bootstrap.App) error) error {
	app, err := bootstrap.New(*opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return run(app)
}

func newTUICmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the Life OS terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tuiOpts := *opts
			tuiOpts.TUI = true
			return withApp(&tuiOpts, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(cmd.Context(), app)
			})
		},
	}
}

func newStatusCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and today's plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				board, err := app.BoardCLI.Board(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if board.HasProfile {
					_, _ = fmt.Fprintln(w, profileLine(board.Profile))
				}
				if len(board.Tasks) == 0 {
					_, _ = fmt.Fprintln(w, "no tasks for today")
					return nil
				}
				for _, task := range board.Tasks {
					_, _ = fmt.Fprintln(w, taskLine(task))
				}
				return nil
			})
		},
	}
}

func newWatchCmd(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Quietly refresh the board until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				poller := app.Poller(func(err error) {
					if err != nil {
						_, _ = fmt.Fprintf(w, "refresh failed: %v\n", err)
						return
					}
					board := app.BoardCLI.Snapshot()
					_, _ = fmt.Fprintf(w, "%s  %d tasks  %s\n", board.SyncedAt.Format("15:04:05"), len(board.Tasks), profileLine(board.Profile))
				})
				if err := poller.Start(cmd.Context()); err != nil {
					return err
				}
				<-cmd.Context().Done()
				poller.Stop()
				return nil
			})
		},
	}
}

func profileLine(p boarddto.ProfileOutput) string {
	const width = 20
	filled := int(p.Progress * width)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("LVL %d [%s] %d/%d XP  streak %d", p.Level, bar, p.XP, p.Level*100, p.Streak)
}

func taskLine(t boarddto.TaskOutput) string {
	box := "[ ]"
	if t.IsDoneToday {
		box = "[x]"
	}
	line := fmt.Sprintf("%s #%d %s", box, t.ID, t.Title)
	if t.NicheName != "" {
		line += " (" + strings.TrimSpace(t.Glyph+" "+t.NicheName) + ")"
	}
	if t.Recurring {
		line += " recurring"
	}
	if t.ScheduledTime != "" {
		line += " @" + t.ScheduledTime
	}
	return line
}
