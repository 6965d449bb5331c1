package cmd

import (
	"context"
	"os"

	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/PolarWolf314/sitelock/internal/utils"
	"github.com/PolarWolf314/sitelock/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	publishBucket       string
	publishKey          string
	publishRegion       string
	publishEndpoint     string
	publishCacheControl string

	// publishUploader replaces the S3 client for testing.
	publishUploader workflows.Uploader
)

func init() {
	publishCmd.Flags().StringVarP(&publishBucket, "bucket", "b", "", "destination bucket")
	publishCmd.Flags().StringVarP(&publishKey, "key", "k", "index.html", "object key")
	publishCmd.Flags().StringVar(&publishRegion, "region", "", "bucket region (default $AWS_REGION or us-east-1)")
	publishCmd.Flags().StringVar(&publishEndpoint, "endpoint", "", "S3-compatible endpoint URL")
	publishCmd.Flags().StringVar(&publishCacheControl, "cache-control", "no-cache", "Cache-Control header for the object")
}

func resetPublishCommandState() {
	publishBucket = ""
	publishKey = "index.html"
	publishRegion = ""
	publishEndpoint = ""
	publishCacheControl = "no-cache"
	publishUploader = nil
}

// SetPublishUploader replaces the S3 client for testing.
func SetPublishUploader(u workflows.Uploader) {
	publishUploader = u
}

var publishCmd = &cobra.Command{
	Use:   "publish [artifact]",
	Short: "Upload an artifact to an S3 bucket for static hosting",
	Long: `Uploads the artifact with Content-Type text/html. Credentials come from
the usual AWS environment variables or shared config. Use --endpoint for
S3-compatible hosts.

Only sitelock artifacts can be published, so an unprotected page is never
uploaded by mistake.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		artifact := artifactArg(args)

		region := publishRegion
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		if region == "" {
			region = "us-east-1"
		}
		Logger.Debugf("Publishing %s to bucket=%s key=%s region=%s endpoint=%s", artifact, publishBucket, publishKey, region, publishEndpoint)

		spinner, cleanup := startSpinner("Uploading artifact...", verbose)
		defer cleanup()

		result, err := workflows.Publish(context.Background(), workflows.PublishOptions{
			Artifact:     artifact,
			Bucket:       publishBucket,
			Key:          publishKey,
			Region:       region,
			Endpoint:     publishEndpoint,
			CacheControl: publishCacheControl,
			AuditLog:     siteConfig.Audit.Log,
			Uploader:     publishUploader,
		})
		if err != nil {
			Logger.Errorf("Publish failed: %v", err)
			return err
		}

		if result.AuditErr != nil {
			Logger.WarnfAlways("audit log not written: %v", result.AuditErr)
		}

		spinner.FinalMSG = ui.Tick() + " Published " + ui.Path.Sprint(artifact) + " to " +
			ui.Highlight.Sprint(result.Target) + " (" + utils.FormatBytes(result.Bytes) + ")"
		return nil
	},
}
