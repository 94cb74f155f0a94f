package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
)

type indexOutput struct {
	UID        string    `json:"uid" yaml:"uid"`
	PrimaryKey string    `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func toIndexOutput(idx domain.IndexInfo) indexOutput {
	return indexOutput{
		UID:        idx.UID,
		PrimaryKey: idx.PrimaryKey,
		CreatedAt:  idx.CreatedAt,
		UpdatedAt:  idx.UpdatedAt,
	}
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "List indexes",
	Long: `List the indexes of the search engine with their primary key.

Examples:
  indexdesk-cli indexes
  indexdesk-cli indexes --limit 5 -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, _ := cmd.Flags().GetInt("offset")
		limit, _ := cmd.Flags().GetInt("limit")

		listCmd := commands.NewListIndexesCommand(GetEngine(), offset, limit)
		result, err := listCmd.Execute(GetContext())
		if err != nil {
			return err
		}

		out := make([]indexOutput, 0, len(result.Indexes))
		for _, idx := range result.Indexes {
			out = append(out, toIndexOutput(idx))
		}
		return render(out, func(w io.Writer) {
			if len(out) == 0 {
				fmt.Fprintln(w, "No indexes found")
				return
			}
			for _, idx := range result.Indexes {
				pk := idx.PrimaryKey
				if pk == "" {
					pk = "-"
				}
				fmt.Fprintf(w, "%-24s pk=%-12s updated %s\n", idx.UID, pk, humanize.Time(idx.UpdatedAt))
			}
			if result.Total > int64(len(out)) {
				fmt.Fprintf(w, "(%d of %d indexes)\n", len(out), result.Total)
			}
		})
	},
}

var indexCmd = &cobra.Command{
	Use:   "index <uid>",
	Short: "Show one index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetchCmd := commands.NewFetchIndexCommand(GetEngine(), args[0])
		idx, err := fetchCmd.Execute(GetContext())
		if err != nil {
			return err
		}
		return render(toIndexOutput(*idx), func(w io.Writer) {
			pk := idx.PrimaryKey
			if pk == "" {
				pk = "(not inferred yet)"
			}
			fmt.Fprintf(w, "uid:         %s\n", idx.UID)
			fmt.Fprintf(w, "primary key: %s\n", pk)
			fmt.Fprintf(w, "created:     %s\n", idx.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "updated:     %s (%s)\n", idx.UpdatedAt.Format(time.RFC3339), humanize.Time(idx.UpdatedAt))
		})
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(indexCmd)
	indexesCmd.Flags().Int("offset", 0, "number of indexes to skip")
	indexesCmd.Flags().Int("limit", 20, "maximum number of indexes")
}
