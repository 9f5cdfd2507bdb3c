package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var note string
	var date string
	var status string
	var tipID string
	var freq int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an activity to your ledger",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.CreateActivityInput{
				Title:             args[0],
				Category:          engine.Category(category),
				Note:              note,
				DateISO:           date,
				Status:            engine.Status(status),
				TipID:             tipID,
				FrequencyPerMonth: freq,
			}
			if tipID != "" {
				in.SourceType = engine.SourceTip
			}

			a, err := svc.CreateActivity(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLeaf+" Added ")+a.Title+" "+ui.Muted.Render("("+a.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (Energy|Water|Transport|Waste|Food|Social)")
	cmd.Flags().StringVarP(&note, "note", "m", "", "Free-text note")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Status (planned|in-progress|done)")
	cmd.Flags().StringVar(&tipID, "tip", "", "Link to a catalog tip id")
	cmd.Flags().IntVar(&freq, "freq", 1, "Times per month a linked tip is practiced")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			activities, err := svc.Activities(ctx)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no activities yet — try `gs add` or `gs tips done`)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLeaf, "Activities"))
			for _, a := range activities {
				extra := ""
				if a.TipID != "" {
					extra = ui.Muted.Render(fmt.Sprintf(" tip=%s ×%d", a.TipID, a.FrequencyPerMonth))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s [%s] %s%s\n",
					ui.SourceIcon(string(a.SourceType)),
					ui.Key.Render(a.ID),
					a.Title,
					ui.StatusText(string(a.Status)),
					ui.Muted.Render(a.DateISO),
					extra)
			}
			return nil
		},
	}
}

func activityIDArg(args []string) error {
	if len(args) != 1 {
		return errors.New("activity id is required")
	}
	return nil
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an activity done",
		Args:  func(cmd *cobra.Command, args []string) error { return activityIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			done := engine.StatusDone
			a, err := svc.UpdateActivity(ctx, args[0], engine.ActivityPatch{Status: &done})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" "+a.Title))
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an activity",
		Args:  func(cmd *cobra.Command, args []string) error { return activityIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteActivity(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted."))
			return nil
		},
	}
}
