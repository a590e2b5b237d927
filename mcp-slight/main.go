package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	slight "github.com/rphilander/slight/core"
)

var client *slight.Client

// formatResult turns a core response into an MCP tool result.
func formatResult(resp map[string]any) (*mcp.CallToolResult, error) {
	ok, _ := resp["ok"].(bool)
	if !ok {
		errMsg, _ := resp["error"].(string)
		if errMsg == "" {
			errMsg = "unknown error"
		}
		return mcp.NewToolResultError(errMsg), nil
	}
	out, err := json.MarshalIndent(resp["value"], "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func forward(req map[string]any) (*mcp.CallToolResult, error) {
	resp, err := client.Send(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return formatResult(resp)
}

func handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return forward(map[string]any{"op": "eval", "expr": expr})
}

func handleLoad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return forward(map[string]any{"op": "load", "path": path})
}

func handleTraces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return forward(map[string]any{"op": "traces", "n": request.GetInt("n", 0)})
}

func handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return forward(map[string]any{"op": "history", "n": request.GetInt("n", 0)})
}

func handleClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return forward(map[string]any{"op": "clear"})
}

func main() {
	cfg, err := slight.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err = slight.Dial(cfg.Socket)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Close()
	log.Printf("connected to slight core: %s", cfg.Socket)

	s := server.NewMCPServer(
		"slight",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("slight_eval",
			mcp.WithDescription("Evaluate one or more slight expressions. Returns the last result; every expression's outcome is listed in the core response."),
			mcp.WithString("expr",
				mcp.Required(),
				mcp.Description("Source text, e.g. (δ x 5 (ι x)) or ((λ x x) 7)"),
			),
		),
		handleEval,
	)

	s.AddTool(
		mcp.NewTool("slight_load",
			mcp.WithDescription("Evaluate every expression in a file on the core host."),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path of the source file"),
			),
		),
		handleLoad,
	)

	s.AddTool(
		mcp.NewTool("slight_traces",
			mcp.WithDescription("List recent evaluations of the current session."),
			mcp.WithNumber("n",
				mcp.Description("How many of the most recent traces to return; 0 or absent returns all"),
			),
		),
		handleTraces,
	)

	s.AddTool(
		mcp.NewTool("slight_history",
			mcp.WithDescription("List recent evaluations from the persistent history database."),
			mcp.WithNumber("n",
				mcp.Description("How many of the most recent entries to return; 0 or absent returns all"),
			),
		),
		handleHistory,
	)

	s.AddTool(
		mcp.NewTool("slight_clear",
			mcp.WithDescription("Clear the session: drop all bindings, traces and stored history."),
		),
		handleClear,
	)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
