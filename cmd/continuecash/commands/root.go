package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "continuecash",
	Short: "Tools for working with continuecash pair instances",
}

// Execute is the main function of `cmd` package.
// Usually called by the `main.main()`.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(pairAddrCmd)
}
