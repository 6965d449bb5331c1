package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PolarWolf314/sitelock/internal/preview"
	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/spf13/cobra"
)

var previewAddr string

func init() {
	previewCmd.Flags().StringVarP(&previewAddr, "addr", "a", "127.0.0.1:8080", "address to listen on")
}

func resetPreviewCommandState() {
	previewAddr = "127.0.0.1:8080"
}

var previewCmd = &cobra.Command{
	Use:   "preview [artifact]",
	Short: "Serve an artifact locally to try the unlock flow in a browser",
	Long: `Serves the artifact over HTTP until interrupted. The file is re-read on
every request, so rebuilding while the server runs is picked up on reload.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		artifact := artifactArg(args)
		if _, err := os.Stat(artifact); err != nil {
			Logger.Warnf("Artifact %s not readable yet: %v", artifact, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := preview.New(preview.Config{
			Artifact:   artifact,
			ListenAddr: previewAddr,
			Log:        Logger,
		})

		ln, err := server.Listen()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to listen on %s: %w", previewAddr, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Tick() + " Serving " + ui.Path.Sprint(artifact) + " at " + ui.Highlight.Sprint("http://"+ln.Addr().String()+"/"))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Arrow() + " Press Ctrl+C to stop")

		return server.Serve(ctx, ln)
	},
}
