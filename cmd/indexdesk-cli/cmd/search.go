package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
)

type searchOutput struct {
	Query              string    `json:"query" yaml:"query"`
	Offset             int       `json:"offset" yaml:"offset"`
	Limit              int       `json:"limit" yaml:"limit"`
	EstimatedTotalHits int64     `json:"estimatedTotalHits" yaml:"estimatedTotalHits"`
	ProcessingTimeMs   int64     `json:"processingTimeMs" yaml:"processingTimeMs"`
	Hits               documents `json:"hits" yaml:"hits"`
}

var searchCmd = &cobra.Command{
	Use:   "search <index> [query]",
	Short: "Search the documents of an index",
	Long: `Search an index and print one page of hits.

Filter and sort use the engine's syntax. Sort takes a comma-separated
list of attribute:direction pairs.

Examples:
  indexdesk-cli search movies alien
  indexdesk-cli search movies --filter 'year > 1990' --sort 'year:desc'
  indexdesk-cli search movies --offset 20 --limit 20 -o yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := domain.DefaultSearchQuery()
		q.Query, _ = cmd.Flags().GetString("query")
		if len(args) == 2 {
			q.Query = args[1]
		}
		q.Offset, _ = cmd.Flags().GetInt("offset")
		q.Limit, _ = cmd.Flags().GetInt("limit")
		q.Filter, _ = cmd.Flags().GetString("filter")
		q.Sort, _ = cmd.Flags().GetString("sort")

		searchCmd := commands.NewSearchCommand(GetEngine(), args[0], q)
		result, err := searchCmd.Execute(GetContext())
		if err != nil {
			return err
		}

		out := searchOutput{
			Query:              q.Query,
			Offset:             q.Offset,
			Limit:              q.Limit,
			EstimatedTotalHits: result.EstimatedTotalHits,
			ProcessingTimeMs:   result.ProcessingTimeMs,
			Hits:               documents(result.Hits),
		}
		return render(out, func(w io.Writer) {
			if len(result.Hits) == 0 {
				fmt.Fprintln(w, "No results found")
				return
			}
			for _, hit := range result.Hits {
				line, err := json.Marshal(hit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, string(line))
			}
			fmt.Fprintf(w, "%d-%d of ~%s hits in %dms\n",
				q.Offset+1, q.Offset+len(result.Hits),
				humanize.Comma(result.EstimatedTotalHits), result.ProcessingTimeMs)
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("query", "q", "", "query text (same as the second argument)")
	searchCmd.Flags().Int("offset", 0, "number of hits to skip")
	searchCmd.Flags().Int("limit", domain.DefaultSearchLimit, fmt.Sprintf("page size (0-%d)", domain.MaxSearchLimit-1))
	searchCmd.Flags().String("filter", "", "filter expression")
	searchCmd.Flags().String("sort", "", "comma-separated sort expressions")
}
