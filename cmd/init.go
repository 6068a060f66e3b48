package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize termlens configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure termlens for your project and generates a .termlens.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
