package cmd

import (
	"context"

	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/PolarWolf314/sitelock/internal/utils"
	"github.com/PolarWolf314/sitelock/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptExtract string
	decryptOutput  string
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptExtract, "extract", "e", "", "write the original site files into this directory")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "write the unlocked page as one HTML file with inlined assets")
}

func resetDecryptCommandState() {
	decryptExtract = ""
	decryptOutput = ""
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [artifact]",
	Short: "Unlock an artifact locally to check its password and contents",
	Long: `Opens an artifact the same way the browser does. Without flags it only
verifies the password and lists the files inside.

The password is read from the configured environment variable, or prompted
for when running in a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		artifact := artifactArg(args)

		password, err := resolvePassword()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Decrypting artifact...", verbose)
		defer cleanup()

		result, err := workflows.Decrypt(context.Background(), workflows.DecryptOptions{
			Artifact:   artifact,
			Password:   password,
			ExtractDir: decryptExtract,
			Output:     decryptOutput,
			Cipher:     cipherOverride,
		})
		if err != nil {
			Logger.Errorf("Decrypt failed: %v", err)
			return err
		}

		msg := ui.Tick() + " Unlocked " + ui.Path.Sprint(artifact) + ", " +
			ui.Highlight.Sprintf("%d %s", len(result.Files), utils.Pluralize(len(result.Files), "file")) + ":" +
			utils.FormatPaths(result.Files)
		if result.Extracted != "" {
			msg += ui.Arrow() + " Files written to " + ui.Path.Sprint(result.Extracted) + "\n"
		}
		if result.Rehydrated != "" {
			msg += ui.Arrow() + " Unlocked page written to " + ui.Path.Sprint(result.Rehydrated) + "\n"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
