package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newTipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Browse the sustainability tip catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tips, err := svc.Tips(ctx)
			if err != nil {
				return err
			}
			saved, err := svc.SavedTipIDs(ctx)
			if err != nil {
				return err
			}
			savedSet := map[string]bool{}
			for _, id := range saved {
				savedSet[id] = true
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTip, "Sustainability Tips"))
			for _, t := range tips {
				mark := " "
				if savedSet[t.ID] {
					mark = "★"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s — %s %s\n",
					mark,
					ui.Key.Render(t.ID),
					t.Title,
					ui.Muted.Render(fmt.Sprintf("(%s, %s, %.0fkg CO₂/mo)", t.Category, t.Difficulty, t.Impact.CO2Kg)))
			}
			return nil
		},
	}

	cmd.AddCommand(newTipsShowCmd(), newTipsDoneCmd(), newTipsSaveCmd())

	return cmd
}

func tipIDArg(args []string) error {
	if len(args) != 1 {
		return errors.New("tip id is required")
	}
	return nil
}

func newTipsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tip's details and steps",
		Args:  func(cmd *cobra.Command, args []string) error { return tipIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.TipByID(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			title := t.Title
			if saved, err := svc.IsTipSaved(ctx, t.ID); err == nil && saved {
				title += " ★"
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTip, title))
			fmt.Fprintln(out, ui.Muted.Render(t.Summary))
			fmt.Fprintln(out, ui.LabelValue("Category", t.Category))
			fmt.Fprintln(out, ui.LabelValue("Difficulty", t.Difficulty))
			fmt.Fprintln(out, ui.LabelValue("Effort", fmt.Sprintf("%d min", t.EffortMinutes)))
			fmt.Fprintln(out, ui.LabelValue("Monthly impact", fmt.Sprintf("%.0f kg CO₂ · $%.0f · %.0f L water", t.Impact.CO2Kg, t.Impact.MoneyAUD, t.Impact.WaterL)))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Steps"))
			for i, step := range t.Steps {
				fmt.Fprintf(out, "%d. %s\n", i+1, step)
			}
			return nil
		},
	}
}

func newTipsDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a tip as practiced this month",
		Args:  func(cmd *cobra.Command, args []string) error { return tipIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := svc.MarkTipDone(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" "+a.Title)+" "+ui.Muted.Render("(ledger id "+a.ID+")"))
			return nil
		},
	}
}

func newTipsSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Toggle a tip in your saved list",
		Args:  func(cmd *cobra.Command, args []string) error { return tipIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			saved, err := svc.ToggleTipSaved(ctx, args[0])
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Saved."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Removed from saved tips."))
			}
			return nil
		},
	}
}
