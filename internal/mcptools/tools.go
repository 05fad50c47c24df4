// Package mcptools exposes the division engines as MCP tools.
package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"long-division-api/internal/division"
	"long-division-api/internal/history"
	"long-division-api/internal/observability"
)

// Tools holds the state shared by the tool handlers.
type Tools struct {
	history history.Store
	now     func() time.Time
}

// New returns Tools recording calculations into store.
func New(store history.Store) *Tools {
	return &Tools{history: store, now: time.Now}
}

// Register adds long_division, chain_division and division_history to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("long_division",
		mcp.WithDescription("Divide a non-negative dividend by a positive divisor and explain each long-division step"),
		mcp.WithNumber("dividend",
			mcp.Required(),
			mcp.Description("Number being divided (>= 0)"),
		),
		mcp.WithNumber("divisor",
			mcp.Required(),
			mcp.Description("Number to divide by (> 0)"),
		),
	), t.LongDivision)

	s.AddTool(mcp.NewTool("chain_division",
		mcp.WithDescription("Divide a starting number by each divisor in turn, carrying the whole-number quotient forward"),
		mcp.WithNumber("start",
			mcp.Required(),
			mcp.Description("Starting number (>= 0)"),
		),
		mcp.WithString("divisors",
			mcp.Required(),
			mcp.Description("Divisors separated by commas or spaces, e.g. '5, 4, 10'"),
		),
	), t.ChainDivision)

	s.AddTool(mcp.NewTool("division_history",
		mcp.WithDescription("List the most recent calculations, newest first"),
	), t.History)
}

// LongDivision handles the long_division tool.
func (t *Tools) LongDivision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dividend, err := numberArg(args, "dividend")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	divisor, err := numberArg(args, "divisor")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := division.ValidateLong(dividend, divisor); err != nil {
		return mcp.NewToolResultError(division.Message(err)), nil
	}

	result := division.Divide(dividend, divisor)
	if err := t.history.Append(ctx, history.NewSimpleEntry(result, t.now())); err != nil {
		observability.Logger.Error("recording history failed", zap.String("tool", "long_division"), zap.Error(err))
		return nil, fmt.Errorf("record history: %w", err)
	}

	r := division.Render(result, division.DefaultOptions())

	var b strings.Builder
	b.WriteString(r.Summary + "\n")
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("Verification: " + r.Verification)

	return mcp.NewToolResultText(b.String()), nil
}

// ChainDivision handles the chain_division tool.
func (t *Tools) ChainDivision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	start, err := numberArg(args, "start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, _ := args["divisors"].(string)
	divisors, err := division.ParseDivisors(text)
	if err != nil {
		return mcp.NewToolResultError(division.Message(err)), nil
	}
	if err := division.ValidateChain(start, divisors); err != nil {
		return mcp.NewToolResultError(division.Message(err)), nil
	}

	result := division.DivideChain(start, divisors)
	if err := t.history.Append(ctx, history.NewChainEntry(result, t.now())); err != nil {
		observability.Logger.Error("recording history failed", zap.String("tool", "chain_division"), zap.Error(err))
		return nil, fmt.Errorf("record history: %w", err)
	}

	var b strings.Builder
	for _, step := range result.Steps {
		b.WriteString(step.Description + "\n")
	}
	b.WriteString(result.Expression)

	return mcp.NewToolResultText(b.String()), nil
}

// History handles the division_history tool.
func (t *Tools) History(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No calculation history yet"), nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

// numberArg accepts a JSON number or numeric text.
func numberArg(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case string:
		n, err := division.ParseNumber(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %s", key, division.Message(err))
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s: %s", key, division.ErrNotANumber)
	}
}
