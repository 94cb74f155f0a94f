package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

type taskOutput struct {
	UID        int64      `json:"uid" yaml:"uid"`
	IndexUID   string     `json:"indexUid" yaml:"indexUid"`
	Status     string     `json:"status" yaml:"status"`
	Type       string     `json:"type" yaml:"type"`
	EnqueuedAt time.Time  `json:"enqueuedAt" yaml:"enqueuedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty" yaml:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
}

func toTaskOutput(t domain.Task) taskOutput {
	out := taskOutput{
		UID:        t.UID,
		IndexUID:   t.IndexUID,
		Status:     string(t.Status),
		Type:       t.Type,
		EnqueuedAt: t.EnqueuedAt,
		Error:      t.Error,
	}
	if !t.FinishedAt.IsZero() {
		finished := t.FinishedAt
		out.FinishedAt = &finished
	}
	return out
}

func printTask(w io.Writer, t domain.Task) {
	fmt.Fprintf(w, "#%-8d %-10s %-24s %s", t.UID, t.Status, t.Type, t.IndexUID)
	if !t.EnqueuedAt.IsZero() {
		fmt.Fprintf(w, "  enqueued %s", humanize.Time(t.EnqueuedAt))
	}
	if t.Error != "" {
		fmt.Fprintf(w, "  error: %s", t.Error)
	}
	fmt.Fprintln(w)
}

var taskCmd = &cobra.Command{
	Use:   "task <uid>",
	Short: "Show the status of a task",
	Long: `Fetch the current status of an engine task and refresh its journal entry.

With --local the journal entry is printed without contacting the engine.

Examples:
  indexdesk-cli task 42
  indexdesk-cli task 42 --wait`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uid, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task uid %q", args[0])
		}
		local, _ := cmd.Flags().GetBool("local")
		wait, _ := cmd.Flags().GetDuration("wait")

		var task *domain.Task
		switch {
		case local:
			if journal == nil {
				return errors.New("task journal is not available")
			}
			task, err = journal.Get(GetContext(), uid)
		case wait > 0:
			task, err = waitForTask(GetContext(), uid, wait)
		default:
			task, err = commands.NewTaskStatusCommand(GetEngine(), GetJournal(), uid).Execute(GetContext())
		}
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("task %d not found", uid)
		}
		if err != nil {
			return err
		}
		return render(toTaskOutput(*task), func(w io.Writer) { printTask(w, *task) })
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks [index]",
	Short: "List recently enqueued tasks",
	Long: `List the tasks recorded in the local journal, newest first.

Only tasks enqueued by indexdesk on this machine are listed.

Examples:
  indexdesk-cli tasks
  indexdesk-cli tasks movies --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index string
		if len(args) == 1 {
			index = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		tasks, err := commands.NewListTasksCommand(GetJournal(), index, limit).Execute(GetContext())
		if err != nil {
			return err
		}

		out := make([]taskOutput, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, toTaskOutput(t))
		}
		return render(out, func(w io.Writer) {
			if len(tasks) == 0 {
				fmt.Fprintln(w, "No tasks recorded")
				return
			}
			for _, t := range tasks {
				printTask(w, t)
			}
		})
	},
}

// waitForTask polls the task until it finishes or timeout elapses
func waitForTask(ctx context.Context, uid int64, timeout time.Duration) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	status := commands.NewTaskStatusCommand(GetEngine(), GetJournal(), uid)
	for {
		task, err := status.Execute(ctx)
		if err != nil {
			return nil, err
		}
		if task.Status.Finished() {
			return task, nil
		}
		select {
		case <-ctx.Done():
			return task, fmt.Errorf("task %d still %s after %s", uid, task.Status, timeout)
		case <-ticker.C:
		}
	}
}

func init() {
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(tasksCmd)
	taskCmd.Flags().Bool("local", false, "read the journal entry only")
	taskCmd.Flags().Duration("wait", 0, "poll until the task finishes, up to this long")
	tasksCmd.Flags().Int("limit", 20, "maximum number of tasks")
}
