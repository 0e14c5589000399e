package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/notice"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListNoticesTool(srv, svc)
	registerGetNoticeTool(srv, svc)
	registerCreateNoticeTool(srv, svc)
	registerDeleteNoticeTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerCreateEventTool(srv, svc)
	registerDeleteEventTool(srv, svc)
	registerMonthTool(srv, svc)
	registerSlideQueueTool(srv, svc)
	registerAnalyticsTool(srv, svc)
}

func registerListNoticesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notices",
		mcp.WithDescription("List notices matching a search term, department and category. Urgent notices come first, then newest."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against title and description."),
		),
		mcp.WithString("department",
			mcp.Description("Department id or all."),
			mcp.Enum(notice.DepartmentFilters()...),
		),
		mcp.WithString("category",
			mcp.Description("Category or all."),
			mcp.Enum(notice.CategoryFilters()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		c := filter.Criteria{
			Search:     request.GetString("search", ""),
			Department: request.GetString("department", notice.All),
			Category:   request.GetString("category", notice.All),
		}
		notices, err := svc.ListNotices(ctx, c)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"notices": notices,
			"count":   len(notices),
		})
	})
}

func registerGetNoticeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_notice",
		mcp.WithDescription("Fetch a single notice by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Notice identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.NoticeByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateNoticeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_notice",
		mcp.WithDescription("Post a new notice to the board."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Notice title.")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Notice text.")),
		mcp.WithString("department",
			mcp.Required(),
			mcp.Description("Department the notice is for."),
			mcp.Enum(notice.DepartmentFilters()...),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Notice category."),
			mcp.Enum(notice.Categories()...),
		),
		mcp.WithString("date", mcp.Description("YYYY-MM-DD; defaults to today.")),
		mcp.WithBoolean("urgent", mcp.Description("Flag the notice as urgent.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Department  string `json:"department"`
			Category    string `json:"category"`
			Date        string `json:"date"`
			Urgent      bool   `json:"urgent"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddNotice(ctx, AddNoticeOptions{
			Title:       args.Title,
			Description: args.Description,
			Date:        args.Date,
			Department:  args.Department,
			Category:    args.Category,
			Urgent:      args.Urgent,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteNoticeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_notice",
		mcp.WithDescription("Delete a notice. Requires confirm=true."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Notice identifier.")),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to delete.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteNotice(ctx, id, request.GetBool("confirm", false)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List events in board order."),
		mcp.WithBoolean("upcoming", mcp.Description("Only events dated today or later.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		events, err := svc.ListEvents(ctx, request.GetBool("upcoming", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"events": events,
			"count":  len(events),
		})
	})
}

func registerCreateEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_event",
		mcp.WithDescription("Schedule a new event."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title.")),
		mcp.WithString("date", mcp.Required(), mcp.Description("YYYY-MM-DD.")),
		mcp.WithString("time", mcp.Required(), mcp.Description("24-hour HH:MM.")),
		mcp.WithString("venue", mcp.Required(), mcp.Description("Where the event happens.")),
		mcp.WithString("description", mcp.Description("Optional details.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Date        string `json:"date"`
			Time        string `json:"time"`
			Venue       string `json:"venue"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.AddEvent(ctx, AddEventOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete an event. Requires confirm=true."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event identifier.")),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to delete.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEvent(ctx, id, request.GetBool("confirm", false)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerMonthTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"month_grid",
		mcp.WithDescription("Build the calendar grid for a month with event days flagged."),
		mcp.WithString("month", mcp.Description("YYYY-MM; defaults to the current month.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		month, err := svc.Month(ctx, request.GetString("month", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(month)
	})
}

func registerSlideQueueTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"slide_queue",
		mcp.WithDescription("Show the slides a slideshow started now would rotate through."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		queue, err := svc.SlideQueue(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"slides": queue,
			"count":  len(queue),
		})
	})
}

func registerAnalyticsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"analytics",
		mcp.WithDescription("Count notices, events and urgent notices, broken down by department."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, err := svc.Analytics(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(a)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
