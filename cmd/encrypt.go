package cmd

import (
	"context"

	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/PolarWolf314/sitelock/internal/utils"
	"github.com/PolarWolf314/sitelock/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encryptInput   string
	encryptOutput  string
	encryptTitle   string
	encryptExclude []string
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptInput, "input", "i", "", "built site directory (default from config: dist)")
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "artifact path (default from config: encrypted/index.html)")
	encryptCmd.Flags().StringVar(&encryptTitle, "title", "", "page title shown on the password form")
	encryptCmd.Flags().StringSliceVarP(&encryptExclude, "exclude", "x", nil, "glob of files to leave out, e.g. '**/*.map' (repeatable)")
}

func resetEncryptCommandState() {
	encryptInput = ""
	encryptOutput = ""
	encryptTitle = ""
	encryptExclude = nil
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Bundle a built site into one password-protected HTML file",
	Long: `Collects every file under the input directory, encrypts them with the
password from the environment and writes a single HTML page that unlocks
the site in the browser.

The password is read from the variable named by [build] password_env in
sitelock.toml, SITE_PASSWORD by default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		opts := workflows.EncryptOptions{
			Input:       siteConfig.Site.Input,
			Output:      siteConfig.Site.Output,
			PasswordEnv: siteConfig.Build.PasswordEnv,
			Exclude:     siteConfig.Build.Exclude,
			Page:        pageOptions(),
			AuditLog:    siteConfig.Audit.Log,
			Cipher:      cipherOverride,
			Log:         Logger,
		}
		if cmd.Flags().Changed("input") {
			opts.Input = encryptInput
		}
		if cmd.Flags().Changed("output") {
			opts.Output = encryptOutput
		}
		if cmd.Flags().Changed("title") {
			opts.Page.Title = encryptTitle
		}
		if len(encryptExclude) > 0 {
			opts.Exclude = append(append([]string{}, opts.Exclude...), encryptExclude...)
		}
		Logger.Debugf("Encrypt options: input=%s output=%s exclude=%v", opts.Input, opts.Output, opts.Exclude)

		spinner, cleanup := startSpinner("Encrypting site...", verbose)
		defer cleanup()

		result, err := workflows.Encrypt(context.Background(), opts)
		if err != nil {
			Logger.Errorf("Encrypt failed: %v", err)
			return err
		}

		if result.AuditErr != nil {
			Logger.WarnfAlways("audit log not written: %v", result.AuditErr)
		}

		Logger.Infof("Encrypted %d files, payload %s", len(result.Files), utils.FormatBytes(int64(result.PayloadBytes)))
		if verbose || debug {
			Logger.Infof("Files:%s", utils.FormatPaths(result.Files))
		}

		spinner.FinalMSG = ui.Tick() + " Encrypted " + ui.Highlight.Sprintf("%d %s", len(result.Files), utils.Pluralize(len(result.Files), "file")) +
			" into " + ui.Path.Sprint(result.Output) + " (" + utils.FormatBytes(result.OutputBytes) + ")\n" +
			ui.Arrow() + " Publish " + ui.Path.Sprint(result.Output) + " to any static host"
		return nil
	},
}
