package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tasneemkhan/portfolio/internal/visitors"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print page-view statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Visitors.Enabled {
			return errors.New("visitor tracking is disabled in config")
		}

		store, err := visitors.Open(cfg.Visitors.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.Stats(cmd.Context(), time.Now())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Total visits\t%d\n", st.TotalVisits)
		fmt.Fprintf(tw, "Unique visitors\t%d\n", st.UniqueVisitors)
		fmt.Fprintf(tw, "Today\t%d\n", st.VisitsToday)
		fmt.Fprintf(tw, "Last 7 days\t%d\n", st.VisitsThisWeek)
		if len(st.TopPaths) > 0 {
			fmt.Fprintln(tw, "\nPath\tVisits")
			for _, p := range st.TopPaths {
				fmt.Fprintf(tw, "%s\t%d\n", p.Path, p.Visits)
			}
		}
		if len(st.RecentVisits) > 0 {
			fmt.Fprintln(tw, "\nWhen\tVisitor\tPath")
			for _, v := range st.RecentVisits {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.VisitedAt.Format(time.DateTime), v.HashedIP, v.Path)
			}
		}
		return tw.Flush()
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")
	rootCmd.AddCommand(statsCmd)
}
