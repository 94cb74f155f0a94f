package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"indexdesk/internal/application"
	"indexdesk/internal/application/commands"
)

// finish prints the enqueued task, waiting for it when --wait is set
func finish(cmd *cobra.Command, result *commands.MutationResult) error {
	wait, _ := cmd.Flags().GetDuration("wait")
	task := result.Task
	if wait > 0 {
		done, err := waitForTask(GetContext(), task.UID, wait)
		if err != nil {
			return err
		}
		task = done
	}
	return render(toTaskOutput(*task), func(w io.Writer) {
		if wait > 0 {
			printTask(w, *task)
			return
		}
		fmt.Fprintln(w, result.Message)
	})
}

var addCmd = &cobra.Command{
	Use:   "add <index> [file|-]",
	Short: "Add documents to an index",
	Long: `Add a JSON array of documents (or a single object) to an index.
The documents are read from the file, or from stdin when it is omitted or "-".

Existing documents with the same primary key are replaced.

Examples:
  indexdesk-cli add movies movies.json
  echo '[{"id": 1, "title": "Alien"}]' | indexdesk-cli add movies --wait 30s`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 2 {
			path = args[1]
		}
		text, err := readInput(path)
		if err != nil {
			return err
		}
		docs, err := application.ParseDocumentBatch(text)
		if err != nil {
			return err
		}

		addCmd := commands.NewAddDocumentsCommand(GetEngine(), GetJournal(), args[0], docs)
		result, err := addCmd.Execute(GetContext())
		if err != nil {
			return err
		}
		return finish(cmd, result)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <index> [file|-]",
	Short: "Update one document",
	Long: `Merge a JSON object into the document with the same primary key.
Fields not present in the object are kept.

Examples:
  indexdesk-cli update movies patch.json
  echo '{"id": 1, "year": 1979}' | indexdesk-cli update movies`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 2 {
			path = args[1]
		}
		text, err := readInput(path)
		if err != nil {
			return err
		}
		doc, err := application.ParseDocument(text)
		if err != nil {
			return err
		}

		updateCmd := commands.NewUpdateDocumentsCommand(GetEngine(), GetJournal(), args[0], doc)
		result, err := updateCmd.Execute(GetContext())
		if err != nil {
			return err
		}
		return finish(cmd, result)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <index> <id>...",
	Short: "Delete documents by id",
	Long: `Delete documents by primary key value.

Warning: This operation cannot be undone.

Examples:
  indexdesk-cli delete movies 42
  indexdesk-cli delete movies 42 43 44 --wait 10s`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteCmd := commands.NewDeleteDocumentsCommand(GetEngine(), GetJournal(), args[0], args[1:])
		result, err := deleteCmd.Execute(GetContext())
		if err != nil {
			return err
		}
		return finish(cmd, result)
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, updateCmd, deleteCmd} {
		c.Flags().Duration("wait", 0, "wait up to this long for the task to finish")
		rootCmd.AddCommand(c)
	}
}
