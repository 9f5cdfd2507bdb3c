package root

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show profile stats, level and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			level := engine.Level(p.TotalXP)
			next := engine.XPForNextLevel(p.TotalXP)
			progress := engine.ProgressPercent(p.TotalXP)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Community Status"))
			fmt.Fprintln(out, ui.LabelValue("User", p.Email))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d — %s", level, engine.LevelTitle(level))))
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (next level at %d, %d to go)", p.TotalXP, next, next-p.TotalXP)))
			fmt.Fprintln(out, ui.LabelValue("Progress", progressBar(progress, 30)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Counters"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Events attended:"), p.EventsAttended)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Spaces explored:"), p.SpacesExplored)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Events created:"), p.EventsCreated)
			fmt.Fprintln(out, "")

			achievements, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Achievements"))
			if len(achievements) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none yet — track a community activity to get started)"))
				return nil
			}
			for _, a := range achievements {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Gold.Render(a.Name), ui.Muted.Render(a.Description), ui.Muted.Render(fmt.Sprintf("(+%d XP)", a.XPReward)))
			}
			return nil
		},
	}
}

func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %.0f%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), percent)
}
