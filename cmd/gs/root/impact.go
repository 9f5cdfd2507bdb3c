package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newImpactCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show the monthly environmental impact summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			month := time.Now().UTC()
			if monthFlag != "" {
				month, err = time.ParseInLocation("2006-01", monthFlag, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid month %q (want YYYY-MM)", monthFlag)
				}
			}

			impact, err := svc.MonthlyImpact(ctx, month)
			if err != nil {
				return err
			}
			activities, err := svc.Activities(ctx)
			if err != nil {
				return err
			}
			doneInMonth := engine.DoneActivitiesInMonth(activities, month)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGlobe, "Impact for "+month.Format("January 2006")))
			fmt.Fprintln(out, ui.LabelValue("CO₂ saved", fmt.Sprintf("%.1f kg", impact.CO2Kg)))
			fmt.Fprintln(out, ui.LabelValue("Money saved", fmt.Sprintf("$%.2f AUD", impact.MoneyAUD)))
			fmt.Fprintln(out, ui.LabelValue("Water saved", fmt.Sprintf("%.0f L", impact.WaterL)))

			if len(doneInMonth) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("Done this month"))
				for _, a := range doneInMonth {
					fmt.Fprintf(out, "%s %s %s\n", ui.SourceIcon(string(a.SourceType)), a.Title, ui.Muted.Render(a.DateISO))
				}
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d activities on the ledger, %d done in %s.", len(activities), len(doneInMonth), month.Format("January"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "Month to aggregate (YYYY-MM, default current)")

	return cmd
}
