package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/campusboard/pkg/filter"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerNoticesResource(srv, svc)
	registerEventsResource(srv, svc)
	registerNoticeTemplate(srv, svc)
	registerMonthTemplate(srv, svc)
	registerAnalyticsResource(srv, svc)
}

func registerNoticesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"campusboard://notices",
		"Notices",
		mcp.WithResourceDescription("All notices, urgent first, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		notices, err := svc.ListNotices(ctx, filter.Criteria{})
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"notices": notices,
			"count":   len(notices),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEventsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"campusboard://events",
		"Events",
		mcp.WithResourceDescription("All events in board order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		events, err := svc.ListEvents(ctx, false)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"events": events,
			"count":  len(events),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerNoticeTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"campusboard://notices/{id}",
		"Notice Details",
		mcp.WithTemplateDescription("A single notice."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request, "id")
		if id == "" {
			return nil, fmt.Errorf("notice id is required")
		}
		dto, err := svc.NoticeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"notice": dto})
	})
}

func registerMonthTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"campusboard://calendar/{month}",
		"Calendar Month",
		mcp.WithTemplateDescription("Month grid (YYYY-MM) with event days flagged."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month, err := svc.Month(ctx, templateArg(request, "month"))
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, month)
	})
}

func registerAnalyticsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"campusboard://analytics",
		"Analytics",
		mcp.WithResourceDescription("Notice, event and urgent counts with a per-department breakdown."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		a, err := svc.Analytics(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, a)
	})
}

// templateArg reads a URI template variable, which mcp-go may deliver as a
// string or a one-element slice.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
