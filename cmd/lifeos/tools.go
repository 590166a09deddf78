package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifeos/internal/bootstrap"
	opsinadapter "lifeos/internal/modules/ops/adapter/in"
)

func newShopCmd(opts *bootstrap.Options) *cobra.Command {
	shop := &cobra.Command{Use: "shop", Short: "Spend XP on rewards"}

	shop.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				items, err := app.ShopCLI.Items(cmd.Context())
				if err != nil {
					return err
				}
				for _, it := range items {
					state := ""
					switch {
					case it.Owned:
						state = "owned"
					case !it.Affordable:
						state = "locked"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s %-22s %5d XP  %s\n", it.Key, it.Icon, it.Title, it.Price, state)
				}
				return nil
			})
		},
	})

	shop.AddCommand(&cobra.Command{
		Use:   "buy <key>",
		Short: "Buy an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ShopCLI.Buy(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bought %s, %d XP left\n", out.Item.Title, out.XP)
				return nil
			})
		},
	})

	shop.AddCommand(&cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				list, err := app.ShopCLI.Achievements(cmd.Context())
				if err != nil {
					return err
				}
				for _, a := range list {
					box := "[ ]"
					if a.Unlocked {
						box = "[x]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-14s %s %d/%d\n", box, a.Icon, a.Title, a.Kind, a.Current, a.Threshold)
				}
				return nil
			})
		},
	})
	return shop
}

func newAICmd(opts *bootstrap.Options) *cobra.Command {
	ai := &cobra.Command{Use: "ai", Short: "Assistant endpoints"}

	ai.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Daily summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AssistantCLI.DailySummary(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	ai.AddCommand(&cobra.Command{
		Use:   "hooks <model>",
		Short: "Viral hooks for a model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AssistantCLI.Hooks(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	ai.AddCommand(&cobra.Command{
		Use:   "plan <brief>",
		Short: "Content plan from a brief",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AssistantCLI.Plan(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	ai.AddCommand(&cobra.Command{
		Use:   "parse <text>",
		Short: "Show the raw task suggestion for free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.AssistantCLI.Parse(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s | niche=%s recurring=%t at=%s due=%s\n",
					out.Title, out.NicheSuggested, out.IsRecurring, out.ScheduledTime, out.DueDate)
				return nil
			})
		},
	})

	ai.AddCommand(&cobra.Command{
		Use:   "split <goal>",
		Short: "Preview the subtasks for a goal without creating them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				subtasks, err := app.AssistantCLI.Breakdown(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				for i, s := range subtasks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s)\n", i+1, s.Title, s.Niche)
				}
				return nil
			})
		},
	})
	return ai
}

func newLabCmd(opts *bootstrap.Options) *cobra.Command {
	lab := &cobra.Command{Use: "lab", Short: "Image tools"}

	var mode, magicOut string
	magicCmd := &cobra.Command{
		Use:   "magic <image>",
		Short: "Roast, compliment or caption an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ImagingCLI.Magic(cmd.Context(), args[0], mode, magicOut)
				if err != nil {
					return err
				}
				printTransform(cmd, out.Result, out.DataURI, out.SavedTo)
				return nil
			})
		},
	}
	magicCmd.Flags().StringVar(&mode, "mode", "", "roast|compliment|caption")
	magicCmd.Flags().StringVar(&magicOut, "out", "", "write the result here")

	var swapOut string
	swapCmd := &cobra.Command{
		Use:   "faceswap <image>",
		Short: "Swap the face in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ImagingCLI.FaceSwap(cmd.Context(), args[0], swapOut)
				if err != nil {
					return err
				}
				printTransform(cmd, out.Result, out.DataURI, out.SavedTo)
				return nil
			})
		},
	}
	swapCmd.Flags().StringVar(&swapOut, "out", "", "write the result here")

	lab.AddCommand(magicCmd, swapCmd)
	return lab
}

func printTransform(cmd *cobra.Command, result string, dataURI bool, savedTo string) {
	w := cmd.OutOrStdout()
	if savedTo != "" {
		_, _ = fmt.Fprintf(w, "saved %s\n", savedTo)
		return
	}
	if dataURI {
		_, _ = fmt.Fprintf(w, "image result (%d bytes, use --out to save)\n", len(result))
		return
	}
	_, _ = fmt.Fprintln(w, result)
}

func newSystemCmd(opts *bootstrap.Options) *cobra.Command {
	system := &cobra.Command{Use: "system", Short: "Backend maintenance"}

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all server data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				msg, err := app.SystemCLI.Reset(cmd.Context(), yes, "")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	}
	resetCmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")

	var verify bool
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Show credential health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SystemCLI.Health(cmd.Context(), verify)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, c := range out.Credentials {
					mark := "fail"
					if c.OK {
						mark = "ok"
					}
					line := fmt.Sprintf("%-4s %-16s %s", mark, c.Name, c.State)
					if c.Verified != "" {
						line += " (" + c.Verified + ")"
					}
					_, _ = fmt.Fprintln(w, line)
				}
				if !out.Healthy {
					return fmt.Errorf("backend unhealthy")
				}
				return nil
			})
		},
	}
	healthCmd.Flags().BoolVar(&verify, "verify", false, "check credentials against the providers")

	system.AddCommand(resetCmd, healthCmd)
	return system
}

func newOpsCmd(opts *bootstrap.Options) *cobra.Command {
	ops := &cobra.Command{Use: "ops", Short: "Command center"}

	ops.AddCommand(&cobra.Command{
		Use:   "windows",
		Short: "Show posting windows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				sched, err := app.OpsCLI.Windows(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timezone %s\n", sched.Timezone)
				for _, w := range sched.Windows {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), opsinadapter.FormatWindow(w))
				}
				return nil
			})
		},
	})

	ops.AddCommand(&cobra.Command{
		Use:   "notify [deep-link]",
		Short: "Send the posting notification now",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := ""
			if len(args) == 1 {
				link = args[0]
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.OpsCLI.Notify(cmd.Context(), link)
				if err != nil {
					return err
				}
				if !out.Sent {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not sent")
					return nil
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sent for "+opsinadapter.FormatWindow(out.Window))
				return nil
			})
		},
	})

	models := &cobra.Command{
		Use:   "models",
		Short: "List models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				list, err := app.OpsCLI.Models(cmd.Context())
				if err != nil {
					return err
				}
				for _, m := range list {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %-16s %-12s %3d%% %s\n", m.ID, m.Name, m.Archetype, m.Progress, m.Status)
				}
				return nil
			})
		},
	}
	var progress int
	var modelStatus string
	setModel := &cobra.Command{
		Use:   "set <id>",
		Short: "Update a model's progress or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				m, err := app.OpsCLI.SetModel(cmd.Context(), id, progress, cmd.Flags().Changed("progress"), modelStatus)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s %d%% %s\n", m.ID, m.Name, m.Progress, m.Status)
				return nil
			})
		},
	}
	setModel.Flags().IntVar(&progress, "progress", 0, "progress 0-100")
	setModel.Flags().StringVar(&modelStatus, "status", "", "status")
	models.AddCommand(setModel)

	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "List account farms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				list, err := app.OpsCLI.Accounts(cmd.Context())
				if err != nil {
					return err
				}
				for _, a := range list {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %-12s %4d %s\n", a.ID, a.Platform, a.Accounts, a.Status)
				}
				return nil
			})
		},
	}
	var count int
	var accountStatus string
	setAccount := &cobra.Command{
		Use:   "set <id>",
		Short: "Update an account farm's count or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				a, err := app.OpsCLI.SetAccount(cmd.Context(), id, count, cmd.Flags().Changed("accounts"), accountStatus)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s %d %s\n", a.ID, a.Platform, a.Accounts, a.Status)
				return nil
			})
		},
	}
	setAccount.Flags().IntVar(&count, "accounts", 0, "number of accounts")
	setAccount.Flags().StringVar(&accountStatus, "status", "", "status")
	accounts.AddCommand(setAccount)

	ops.AddCommand(models, accounts)
	return ops
}

func newToneCmd(opts *bootstrap.Options) *cobra.Command {
	var out string
	tone := &cobra.Command{
		Use:   "tone <success|level-up|delete>",
		Short: "Play a feedback tone, or write it as WAV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.FeedbackCLI.Tone(cmd.Context(), args[0], out); err != nil {
					return err
				}
				if out != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
				}
				return nil
			})
		},
	}
	tone.Flags().StringVar(&out, "out", "", "write the WAV here instead of playing it")

	tone.AddCommand(&cobra.Command{
		Use:   "caps",
		Short: "Show speech, audio and haptics support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				c := app.FeedbackCLI.Capabilities()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "speech:  %t\naudio:   %t\nhaptics: %t\n", c.Speech, c.Audio, c.Haptics)
				return nil
			})
		},
	})

	tone.AddCommand(&cobra.Command{
		Use:   "dictate",
		Short: "Record one utterance and print the transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				text, err := app.FeedbackCLI.Dictate(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	})
	return tone
}
