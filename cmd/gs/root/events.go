package root

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and organize community events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			events, err := svc.PublishedEvents(ctx)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no published events yet)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconEvent, "Community Events"))
			for _, e := range events {
				rsvp := ""
				if going, err := svc.IsRSVPd(ctx, e.ID); err == nil && going {
					rsvp = ui.Good.Render(" ✔ going")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s — %s %s%s\n",
					ui.Key.Render(e.ID),
					e.Title,
					e.DateISO+" "+e.StartTime,
					ui.Muted.Render("@ "+e.Location.Address),
					rsvp)
			}
			return nil
		},
	}

	cmd.AddCommand(
		newEventsProposeCmd(),
		newEventsMineCmd(),
		newEventsSubmitCmd(),
		newEventsPublishCmd(),
		newEventsRSVPCmd(),
		newEventsJoinCmd(),
		newEventsICSCmd(),
	)

	return cmd
}

func eventIDArg(args []string) error {
	if len(args) != 1 {
		return errors.New("event id is required")
	}
	return nil
}

func newEventsProposeCmd() *cobra.Command {
	var in engine.ProposeEventInput

	cmd := &cobra.Command{
		Use:   "propose <title>",
		Short: "Draft a new community event",
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

			in.Title = args[0]
			p, err := svc.ProposeEvent(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconEvent+" Drafted ")+p.Title+" "+ui.Muted.Render("("+p.ID+")"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Submit it with `gs events submit "+p.ID+"`."))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Category, "category", "cleanup", "Event category")
	cmd.Flags().StringVar(&in.Description, "desc", "", "Event description")
	cmd.Flags().StringVar(&in.DateISO, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.StartTime, "start", "09:00", "Start time (HH:MM)")
	cmd.Flags().StringVar(&in.EndTime, "end", "11:00", "End time (HH:MM)")
	cmd.Flags().StringVar(&in.Location.Address, "address", "", "Where the event happens")
	cmd.Flags().IntVar(&in.Capacity, "capacity", 20, "Maximum attendees")
	cmd.Flags().Float64Var(&in.ExpectedImpact.CO2Kg, "co2", 0, "Expected CO₂ saved (kg)")
	cmd.Flags().Float64Var(&in.ExpectedImpact.MoneyAUD, "money", 0, "Expected money saved (AUD)")
	cmd.Flags().Float64Var(&in.ExpectedImpact.WaterL, "water", 0, "Expected water saved (L)")

	return cmd
}

func newEventsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your event proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			proposals, err := svc.Proposals(ctx)
			if err != nil {
				return err
			}
			if len(proposals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no proposals yet — try `gs events propose`)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconEvent, "My Proposals"))
			for _, p := range proposals {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s — %s [%s]\n",
					ui.Key.Render(p.ID), p.Title, p.DateISO, ui.StatusText(string(p.Status)))
			}
			return nil
		},
	}
}

func newEventsSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit a draft for approval",
		Args:  func(cmd *cobra.Command, args []string) error { return eventIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.SubmitProposal(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Approved: ")+p.Title)
			return nil
		},
	}
}

func newEventsPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish an approved event to the community",
		Args:  func(cmd *cobra.Command, args []string) error { return eventIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.PublishProposal(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconEvent+" Published ")+p.Title)
			return nil
		},
	}
}

func newEventsRSVPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rsvp <id>",
		Short: "Toggle your RSVP for a published event",
		Args:  func(cmd *cobra.Command, args []string) error { return eventIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			going, err := svc.ToggleRSVP(ctx, args[0])
			if err != nil {
				return err
			}
			if going {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("You're going!"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("RSVP withdrawn."))
			}
			return nil
		},
	}
}

func newEventsJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Add a published event to your activity ledger",
		Args:  func(cmd *cobra.Command, args []string) error { return eventIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := svc.AddEventToActivities(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLeaf+" On your ledger: ")+a.Title+" "+ui.Muted.Render("("+a.ID+")"))
			return nil
		},
	}
}

func newEventsICSCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "ics <id>",
		Short: "Export a published event as an .ics calendar file",
		Args:  func(cmd *cobra.Command, args []string) error { return eventIDArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			e, err := svc.PublishedEventByID(ctx, args[0])
			if err != nil {
				return err
			}
			blob := engine.BuildICS(e, time.Now())

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), blob)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(blob), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Wrote ")+outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "File to write (default stdout)")

	return cmd
}
