package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:   "workout",
	Short: "Workout tracker CLI",
	Long:  "Command line interface for interacting with the workout tracker API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command for wiring subcommands.
func GetRoot() *cobra.Command {
	return RootCmd
}
