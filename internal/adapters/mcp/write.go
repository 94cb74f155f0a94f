package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexdesk/internal/application"
	"indexdesk/internal/application/commands"
	"indexdesk/internal/ports"
)

// RegisterWriteTools adds all document mutation tools to the MCP server.
// journal may be nil.
func RegisterWriteTools(s *server.MCPServer, engine ports.SearchEngine, journal ports.TaskJournal) {
	s.AddTool(addTool(), addHandler(engine, journal))
	s.AddTool(updateTool(), updateHandler(engine, journal))
	s.AddTool(deleteTool(), deleteHandler(engine, journal))
}

// --- add_documents ---

func addTool() mcp.Tool {
	return mcp.NewTool("add_documents",
		mcp.WithDescription("Add documents to an index. Documents with an existing primary key are replaced. The engine processes the change asynchronously and a task UID is returned."),
		mcp.WithString("index",
			mcp.Description("Index UID"),
			mcp.Required(),
		),
		mcp.WithString("documents",
			mcp.Description(`JSON array of document objects (e.g. [{"id": 1, "title": "Dune"}])`),
			mcp.Required(),
		),
	)
}

func addHandler(engine ports.SearchEngine, journal ports.TaskJournal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid := req.GetString("index", "")

		docs, err := application.ParseDocumentBatch(req.GetString("documents", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewAddDocumentsCommand(engine, journal, uid, docs).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_documents ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update_documents",
		mcp.WithDescription("Update one document. Fields are merged into the stored document with the same primary key."),
		mcp.WithString("index",
			mcp.Description("Index UID"),
			mcp.Required(),
		),
		mcp.WithString("document",
			mcp.Description("JSON object including the primary key field"),
			mcp.Required(),
		),
	)
}

func updateHandler(engine ports.SearchEngine, journal ports.TaskJournal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid := req.GetString("index", "")

		doc, err := application.ParseDocument(req.GetString("document", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewUpdateDocumentsCommand(engine, journal, uid, doc).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_documents ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_documents",
		mcp.WithDescription("Delete documents by primary key value."),
		mcp.WithString("index",
			mcp.Description("Index UID"),
			mcp.Required(),
		),
		mcp.WithArray("ids",
			mcp.Description("Primary key values of the documents to delete"),
			mcp.WithStringItems(),
			mcp.Required(),
		),
	)
}

func deleteHandler(engine ports.SearchEngine, journal ports.TaskJournal) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid := req.GetString("index", "")
		ids := req.GetStringSlice("ids", nil)

		// Clients sometimes send a single comma-separated string
		if len(ids) == 0 {
			for _, id := range strings.Split(req.GetString("ids", ""), ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}
		if len(ids) == 0 {
			return toolError(fmt.Errorf("ids is required"))
		}

		result, err := commands.NewDeleteDocumentsCommand(engine, journal, uid, ids).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
