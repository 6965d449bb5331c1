package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sitelock/internal/page"
	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/PolarWolf314/sitelock/internal/utils"
	"github.com/PolarWolf314/sitelock/internal/workflows"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [artifact]",
	Short: "Show an artifact's envelope layout without a password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		artifact := artifactArg(args)
		Logger.Infof("Inspecting %s", artifact)

		result, err := workflows.Inspect(context.Background(), artifact)
		if err != nil {
			Logger.Errorf("Inspect failed: %v", err)
			return err
		}

		current := page.Current()
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", ui.Info.Sprint("Artifact:"), ui.Path.Sprint(artifact))
		fmt.Fprintf(&b, "  size:         %s\n", utils.FormatBytes(result.ArtifactBytes))
		fmt.Fprintf(&b, "  envelope:     %d base64 characters\n", result.EnvelopeChars)
		fmt.Fprintf(&b, "  salt:         %d bytes\n", result.SaltBytes)
		fmt.Fprintf(&b, "  iv:           %d bytes\n", result.IVBytes)
		fmt.Fprintf(&b, "  ciphertext:   %s (including 16-byte tag)\n", utils.FormatBytes(int64(result.CiphertextBytes)))
		fmt.Fprintf(&b, "%s\n", ui.Info.Sprint("Unlock script:"))
		fmt.Fprintf(&b, "  iterations:   %d\n", result.Constants.Iterations)
		fmt.Fprintf(&b, "  salt length:  %d\n", result.Constants.SaltLength)
		fmt.Fprintf(&b, "  iv length:    %d\n", result.Constants.IVLength)

		if result.Compatible {
			b.WriteString(ui.Tick() + " Constants match this version of sitelock\n")
		} else {
			b.WriteString(ui.Warning.Sprint("!") + fmt.Sprintf(" Constants differ from this version (iterations %d, salt %d, iv %d)\n",
				current.Iterations, current.SaltLength, current.IVLength))
			b.WriteString(ui.Arrow() + " Rebuild with " + ui.Code.Sprint("sitelock encrypt") + " to upgrade\n")
		}

		fmt.Print(b.String())
		return nil
	},
}
