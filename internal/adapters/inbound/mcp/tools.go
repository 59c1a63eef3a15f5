package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dodgate/dodgate/internal/adapters/outbound/evidence"
	"github.com/dodgate/dodgate/internal/adapters/outbound/gitinfo"
	profileLoader "github.com/dodgate/dodgate/internal/adapters/outbound/profile"
	receiptStore "github.com/dodgate/dodgate/internal/adapters/outbound/receipt"
	"github.com/dodgate/dodgate/internal/application"
	"github.com/dodgate/dodgate/internal/checks"
	"github.com/dodgate/dodgate/internal/domain"
)

// registerTools registers all dodgate MCP tools on the given server.
func registerTools(s *server.MCPServer, workspaceRoot string) {
	s.AddTool(
		mcplib.NewTool("dod_validate",
			mcplib.WithDescription("Run the full Definition of Done gate and return the validation result as JSON"),
			mcplib.WithString("profile", mcplib.Description("Built-in profile name: default or enterprise")),
			mcplib.WithString("mode", mcplib.Description("Validation mode: full, quick or ci")),
		),
		handleValidate(workspaceRoot),
	)

	s.AddTool(
		mcplib.NewTool("dod_check",
			mcplib.WithDescription("Run a single Definition of Done check by id and return its result as JSON"),
			mcplib.WithString("id",
				mcplib.Required(),
				mcplib.Description("Check id, e.g. BUILD_CHECK"),
			),
		),
		handleCheck(workspaceRoot),
	)

	s.AddTool(
		mcplib.NewTool("dod_verify_receipt",
			mcplib.WithDescription("Verify an audit receipt's hash chain"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the receipt JSON file"),
			),
		),
		handleVerifyReceipt(),
	)
}

// newValidator wires the default adapter stack for the workspace.
func newValidator(workspaceRoot string) *application.DodValidator {
	stateDir := filepath.Join(workspaceRoot, ".dodgate")
	return application.NewDodValidator(
		checks.DefaultRegistry(),
		profileLoader.New(),
		gitinfo.New(),
		receiptStore.New(filepath.Join(stateDir, "receipts")),
		evidence.New(filepath.Join(stateDir, "evidence")),
		application.NewReportWriter(filepath.Join(stateDir, "reports")),
	)
}

func handleValidate(workspaceRoot string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		opts := application.ValidatorOptions{}

		if name := request.GetString("profile", ""); name != "" {
			p, ok := domain.BuiltinProfiles()[name]
			if !ok {
				return errorResult(fmt.Sprintf("unknown profile %q", name)), nil
			}
			opts.Profile = p
		}
		opts.Mode = domain.ValidationMode(request.GetString("mode", string(domain.ModeFull)))

		result, err := newValidator(workspaceRoot).Validate(ctx, workspaceRoot, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleCheck(workspaceRoot string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newValidator(workspaceRoot).ValidateSingle(ctx, workspaceRoot, id,
			application.ValidatorOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleVerifyReceipt() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		store := receiptStore.New(filepath.Dir(path))
		r, err := store.Load(path)
		if err != nil {
			return errorResult(fmt.Sprintf("loading receipt: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"path":     path,
			"verified": domain.VerifyReceipt(r),
			"verdict":  r.Verdict,
			"score":    r.Score,
			"checks":   len(r.CheckHashes),
		})
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
