package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flakeprobe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("flakeprobe v1.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
