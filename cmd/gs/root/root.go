package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ariel-quanyu/spacegreen/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "gs",
	Short:         "SpaceGreen — local-first sustainability tracker",
	Long:          "SpaceGreen tracks sustainability activities and community events, aggregates your monthly environmental impact, and awards XP for getting involved.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newTipsCmd(),
		newAddCmd(),
		newListCmd(),
		newDoneCmd(),
		newRmCmd(),
		newImpactCmd(),
		newTrackCmd(),
		newStatusCmd(),
		newCalcCmd(),
		newEventsCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
