package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexdesk/internal/application/commands"
	"indexdesk/internal/domain"
	"indexdesk/internal/ports"
)

// RegisterReadTools adds all read-only engine tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, engine ports.SearchEngine) {
	s.AddTool(listIndexesTool(), listIndexesHandler(engine))
	s.AddTool(getIndexTool(), getIndexHandler(engine))
	s.AddTool(searchTool(), searchHandler(engine))
}

// --- list_indexes ---

func listIndexesTool() mcp.Tool {
	return mcp.NewTool("list_indexes",
		mcp.WithDescription("List the indexes of the search engine with their primary keys."),
		mcp.WithNumber("offset",
			mcp.Description("Number of indexes to skip (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of indexes to return (default 20)"),
		),
	)
}

func listIndexesHandler(engine ports.SearchEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		offset := req.GetInt("offset", 0)
		limit := req.GetInt("limit", 20)

		result, err := commands.NewListIndexesCommand(engine, offset, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Indexes) == 0 {
			return mcp.NewToolResultText("No indexes."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d indexes\n", result.Total)
		for _, idx := range result.Indexes {
			sb.WriteString(formatIndex(idx))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_index ---

func getIndexTool() mcp.Tool {
	return mcp.NewTool("get_index",
		mcp.WithDescription("Show the metadata of one index, including its primary key."),
		mcp.WithString("index",
			mcp.Description("Index UID (e.g. movies)"),
			mcp.Required(),
		),
	)
}

func getIndexHandler(engine ports.SearchEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid := req.GetString("index", "")
		if uid == "" {
			return toolError(fmt.Errorf("index is required"))
		}

		info, err := commands.NewFetchIndexCommand(engine, uid).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(formatIndex(*info))
		sb.WriteByte('\n')
		if !info.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, "created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		if !info.UpdatedAt.IsZero() {
			fmt.Fprintf(&sb, "updated: %s\n", info.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search_documents ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_documents",
		mcp.WithDescription("Search an index. Filter and sort are passed to the engine unchanged. Returns the hits as a JSON array."),
		mcp.WithString("index",
			mcp.Description("Index UID"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("Full-text query, empty matches everything"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of hits to skip (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Page size, must be less than 500 (default 20)"),
		),
		mcp.WithString("filter",
			mcp.Description("Filter expression (e.g. genre = horror AND year > 2000)"),
		),
		mcp.WithString("sort",
			mcp.Description("Comma-separated sort expressions (e.g. year:desc, title:asc)"),
		),
	)
}

func searchHandler(engine ports.SearchEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uid := req.GetString("index", "")
		if uid == "" {
			return toolError(fmt.Errorf("index is required"))
		}

		query := domain.SearchQuery{
			Query:  req.GetString("query", ""),
			Offset: req.GetInt("offset", 0),
			Limit:  req.GetInt("limit", domain.DefaultSearchLimit),
			Filter: req.GetString("filter", ""),
			Sort:   req.GetString("sort", ""),
		}

		result, err := commands.NewSearchCommand(engine, uid, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d hits (about %d total, %dms)\n",
			len(result.Hits), result.EstimatedTotalHits, result.ProcessingTimeMs)
		sb.WriteString(domain.FormatDocuments(result.Hits))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatIndex(idx domain.IndexInfo) string {
	pk := idx.PrimaryKey
	if pk == "" {
		pk = "(no primary key)"
	}
	return fmt.Sprintf("%s  %s", idx.UID, pk)
}
