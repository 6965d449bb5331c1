package cmd

import (
	"fmt"

	"github.com/PolarWolf314/sitelock/internal/configs"
	"github.com/PolarWolf314/sitelock/internal/envelope"
	logger "github.com/PolarWolf314/sitelock/internal/logging"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// siteConfig is loaded from configPath before every command runs.
	siteConfig *configs.Config

	// cipherOverride replaces the default encryption parameters. Nil means
	// encrypt uses the defaults and decrypt reads them from the artifact.
	cipherOverride *envelope.Cipher

	RootCmd = &cobra.Command{
		Use:   "sitelock",
		Short: "Password-protect a static site as a single self-contained HTML file",
		Long: `sitelock encrypts a built static site into one HTML page that asks for a
password and unpacks the site in the browser. The page can be published to
any static host without revealing its contents.

Examples:
  # Write a default sitelock.toml
  sitelock init

  # Build the protected page
  SITE_PASSWORD=hunter2 sitelock encrypt --input dist

  # Try it in a browser
  sitelock preview`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)

			config, err := configs.Load(configPath)
			if err != nil {
				return err
			}
			Logger.Debugf("Loaded config from %s: input=%s output=%s", configPath, config.Site.Input, config.Site.Output)
			siteConfig = config
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			banner := figure.NewColorFigure("sitelock", "small", "green", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			return cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configs.DefaultPath, "path to sitelock.toml")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(previewCmd)
	RootCmd.AddCommand(publishCmd)
	RootCmd.AddCommand(historyCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = configs.DefaultPath
	siteConfig = nil
	cipherOverride = nil
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetInitCommandState()
	resetPreviewCommandState()
	resetPublishCommandState()
	resetHistoryCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag so one test's flags do
// not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetCobraFlagState(child)
	}
}

// SetCipher replaces the cipher used by encrypt and decrypt for testing.
func SetCipher(c *envelope.Cipher) {
	cipherOverride = c
}
