package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"code.continuecash.io/continuecash/config"
)

var initOpts struct {
	output string
	force  bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initOpts.output); err == nil && !initOpts.force {
			return fmt.Errorf("configuration already exists at `%v`, remove it first or re-run using -f", initOpts.output)
		}
		cfg := config.NewDefaultConfig()
		if err := config.Write(initOpts.output, &cfg); err != nil {
			return err
		}
		fmt.Printf("configuration written to %s\n", initOpts.output)
		return nil
	},
}

func init() {
	fs := initCmd.Flags()
	fs.StringVarP(&initOpts.output, "output", "o", "config.toml", "path the configuration is written to")
	fs.BoolVarP(&initOpts.force, "force", "f", false, "overwrite an existing configuration")
}
