package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

func newTrackCmd() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "track <event|space|create> <name>",
		Short: "Record a community activity and earn XP",
		Long:  "Record attending an event (+50 XP), exploring a green space (+30 XP) or creating an event (+100 XP). Requires a session.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("activity type and name are required")
			}
			if _, ok := engine.ParseCommunityActivityType(args[0]); !ok {
				return fmt.Errorf("unknown activity type %q (want event|space|create)", args[0])
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

			kind, _ := engine.ParseCommunityActivityType(args[0])
			res, err := svc.TrackCommunityActivity(ctx, engine.TrackCommunityActivityInput{
				Type:     kind,
				Name:     args[1],
				Location: location,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s +%d XP (total %d)\n", ui.Good.Render(ui.IconBolt+" Tracked!"), res.ActivityXP, res.TotalXP)
			for _, a := range res.Unlocked {
				fmt.Fprintf(out, "%s %s %s (+%d XP)\n", ui.Gold.Render(ui.IconTrophy), ui.Gold.Render(a.Name), ui.Muted.Render(a.Description), a.XPReward)
			}
			if res.LevelAfter > res.LevelBefore {
				fmt.Fprintf(out, "%s Level %d → %d (%s)\n", ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter, res.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "Where it happened")

	return cmd
}
