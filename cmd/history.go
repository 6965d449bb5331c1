package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/PolarWolf314/sitelock/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyReverse bool
	historyUser    string
	historyOps     string
	historySince   string
	historyUntil   string
	historyOneline bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "show only the last N entries")
	historyCmd.Flags().BoolVar(&historyReverse, "reverse", false, "show most recent first")
	historyCmd.Flags().StringVar(&historyUser, "user", "", "only entries by this user")
	historyCmd.Flags().StringVar(&historyOps, "operation", "", "only these operations (comma-separated: encrypt,publish)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only entries on or after YYYY-MM-DD")
	historyCmd.Flags().StringVar(&historyUntil, "until", "", "only entries on or before YYYY-MM-DD")
	historyCmd.Flags().BoolVar(&historyOneline, "oneline", false, "compact one line per entry")
}

func resetHistoryCommandState() {
	historyLimit = 0
	historyReverse = false
	historyUser = ""
	historyOps = ""
	historySince = ""
	historyUntil = ""
	historyOneline = false
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds and publishes from the audit log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.History(context.Background(), workflows.HistoryOptions{
			Path:       siteConfig.Audit.Log,
			Limit:      historyLimit,
			Reverse:    historyReverse,
			User:       historyUser,
			Operations: historyOps,
			Since:      historySince,
			Until:      historyUntil,
		})
		if err != nil {
			Logger.Errorf("History failed: %v", err)
			return err
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter > 0 {
				fmt.Println(ui.Muted.Sprint("No entries match the filters"))
			} else {
				fmt.Println(ui.Muted.Sprint("No entries recorded yet"))
			}
			return nil
		}

		var b strings.Builder
		for _, e := range result.Entries {
			if historyOneline {
				fmt.Fprintf(&b, "%s %s %s %s\n", workflows.FormatDate(e.Timestamp),
					ui.Highlight.Sprint(e.Operation), e.User, workflows.FormatDetailsOneline(e))
				continue
			}
			fmt.Fprintf(&b, "%s  %-8s  %-12s  %s\n", workflows.FormatDateTime(e.Timestamp),
				e.Operation, e.User, workflows.FormatDetails(e))
			if verbose && e.BuildID != "" {
				fmt.Fprintf(&b, "    %s %s\n", ui.Muted.Sprint("build"), e.BuildID)
			}
		}
		fmt.Print(b.String())
		return nil
	},
}
