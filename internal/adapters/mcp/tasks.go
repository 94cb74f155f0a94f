package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// RegisterTaskTools adds the task inspection tools to the MCP server.
// list_tasks is only registered when a journal is available.
func RegisterTaskTools(s *server.MCPServer, engine ports.SearchEngine, journal ports.TaskJournal) {
	s.AddTool(getTaskTool(), getTaskHandler(engine, journal))
	if journal != nil {
		s.AddTool(listTasksTool(), listTasksHandler(journal))
	}
}

// --- get_task ---

func getTaskTool() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Get the status of an asynchronous engine task, as returned by the document tools."),
		mcp.WithNumber("task_uid",
			mcp.Description("Task UID"),
			mcp.Required(),
		),
	)
}

func getTaskHandler(engine ports.SearchEngine, journal ports.TaskJournal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid := req.GetInt("task_uid", -1)

		task, err := commands.NewTaskStatusCommand(engine, journal, int64(uid)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatTask(*task)), nil
	}
}

// --- list_tasks ---

func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List the tasks recently enqueued from this machine, newest first."),
		mcp.WithString("index",
			mcp.Description("Only tasks of this index UID"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of tasks (default 20)"),
		),
	)
}

func listTasksHandler(journal ports.TaskJournal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListTasksCommand(journal, req.GetString("index", ""), req.GetInt("limit", 20))
		tasks, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(tasks) == 0 {
			return mcp.NewToolResultText("No tasks."), nil
		}

		var sb strings.Builder
		for _, t := range tasks {
			sb.WriteString(formatTask(t))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatTask(t domain.Task) string {
	line := fmt.Sprintf("#%d  %s  %s", t.UID, t.Status, t.Type)
	if t.IndexUID != "" {
		line += "  " + t.IndexUID
	}
	if !t.EnqueuedAt.IsZero() {
		line += "  enqueued " + humanize.Time(t.EnqueuedAt)
	}
	if t.Error != "" {
		line += "  error: " + t.Error
	}
	return line
}
