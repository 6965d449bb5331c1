package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sitelock/internal/configs"
	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
}

func resetInitCommandState() {
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default sitelock.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Writing default config to %s", configPath)

		if err := configs.WriteDefault(configPath, initForce); err != nil {
			Logger.Errorf("Init failed: %v", err)
			return err
		}

		defaults := configs.Default()
		fmt.Fprintln(cmd.OutOrStdout(), ui.Tick() + " Created " + ui.Path.Sprint(configPath))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Arrow() + " Build your site into " + ui.Path.Sprint(defaults.Site.Input) +
			", then run " + ui.Code.Sprint(defaults.Build.PasswordEnv+"=... sitelock encrypt"))
		return nil
	},
}
