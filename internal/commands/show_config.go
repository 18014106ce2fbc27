// internal/commands/show_config.go
package commands

import (
	"github.com/mwiater/holonet/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display information related to holonet.`,
}

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the config file is loaded properly and overridden by flags accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appconfig.Defaults()
		if loaded := GetConfig(); loaded != nil {
			cfg = *loaded
		}
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			return appconfig.WriteYAML(cmd.OutOrStdout(), cfg)
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().Bool("yaml", false, "print the effective configuration as YAML")
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
