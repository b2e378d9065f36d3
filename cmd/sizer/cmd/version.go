package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the sizer CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sizer version %s\n", version)
		fmt.Println("Risk-bounded position sizing for discretionary trade plans")
		fmt.Println("https://github.com/rustyeddy/sizer")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
