// Package mcpserver exposes the clokk core to agents over the Model
// Context Protocol. Tool handlers call the same core operations the
// CLI uses and return typed failures as structured error results.
package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/machielvdw/clokk/internal/core"
)

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(repo core.Repository, version string) error {
	srv := server.NewMCPServer(
		"clokk",
		version,
		server.WithToolCapabilities(false),
	)

	registerTimerTools(srv, repo)
	registerEntryTools(srv, repo)
	registerProjectTools(srv, repo)
	registerReportTools(srv, repo)

	return server.ServeStdio(srv)
}

// toolResult converts a core call into an MCP result. Typed core
// errors become structured isError payloads; anything else bubbles up
// as a protocol failure.
func toolResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		var ce *core.Error
		if errors.As(err, &ce) {
			envelope, merr := json.Marshal(map[string]any{
				"error":       ce.Code,
				"message":     ce.Message,
				"suggestions": ce.Suggestions,
			})
			if merr != nil {
				return mcp.NewToolResultError(ce.Message), nil
			}
			return mcp.NewToolResultError(string(envelope)), nil
		}
		return nil, err
	}

	result, merr := mcp.NewToolResultJSON(v)
	if merr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", merr)), nil
	}
	return result, nil
}
