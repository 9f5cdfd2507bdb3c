package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newCalcCmd() *cobra.Command {
	var in engine.CalcInputs
	var report bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Estimate your monthly carbon footprint",
		Long:  "Estimate monthly CO₂ from commuting, home energy and waste. With no flags, re-runs the last saved inputs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("transport") {
				saved, err := svc.CalculatorInputs(ctx)
				if err != nil {
					return err
				}
				if saved.TransportMethod == "" {
					return fmt.Errorf("no saved inputs: pass at least --transport, --distance and --days")
				}
				in = saved
			}

			results, err := engine.CalculateEmissions(in)
			if err != nil {
				return err
			}
			if err := svc.SaveCalculatorInputs(ctx, in); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalc, "Carbon Footprint"))
			fmt.Fprintln(out, ui.LabelValue("Transport", fmt.Sprintf("%.1f kg/mo", results.TransportKg)))
			if results.EnergyKg > 0 {
				fmt.Fprintln(out, ui.LabelValue("Home energy", fmt.Sprintf("%.1f kg/mo", results.EnergyKg)))
			}
			if results.WasteKg > 0 {
				fmt.Fprintln(out, ui.LabelValue("Waste", fmt.Sprintf("%.1f kg/mo", results.WasteKg)))
			}
			fmt.Fprintln(out, ui.LabelValue("Total", fmt.Sprintf("%.1f kg/mo (%.0f kg/yr)", results.TotalMonthlyKg, results.TotalYearlyKg)))
			fmt.Fprintln(out, ui.LabelValue("Tree equivalent", fmt.Sprintf("%.1f trees/yr", results.TreesEquivalent)))
			if results.PotentialSavingsKg > 0 {
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Switching to the bus would save %.1f kg/mo", ui.IconLeaf, results.PotentialSavingsKg)))
			}

			if report {
				a, err := svc.GenerateCalculatorReport(ctx, results)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Muted.Render("Logged to ledger as "+a.ID+"."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.TransportMethod, "transport", "", "Commute method (car|bus|train|bike|walk)")
	cmd.Flags().Float64Var(&in.DistanceKm, "distance", 0, "One-way commute distance in km")
	cmd.Flags().IntVar(&in.DaysPerWeek, "days", 0, "Commute days per week (1-7)")
	cmd.Flags().Float64Var(&in.HomeEnergyKwh, "energy", 0, "Monthly home energy use in kWh")
	cmd.Flags().Float64Var(&in.RenewablePercent, "renewable", 0, "Renewable share of home energy (0-100)")
	cmd.Flags().Float64Var(&in.WasteKg, "waste", 0, "Monthly landfill waste in kg")
	cmd.Flags().Float64Var(&in.RecyclingPercent, "recycling", 0, "Recycled share of waste (0-100)")
	cmd.Flags().BoolVar(&report, "report", false, "Record the potential savings as a done activity")

	return cmd
}
