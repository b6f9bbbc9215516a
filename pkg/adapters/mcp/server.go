// Package mcp exposes the simulation engine as a Model Context Protocol
// server, so agent tooling can ask for empirical odds directly.
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mendelian/mendel"
	"github.com/mendelian/mendel/internal/definition"
)

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	Trials        uint64             `json:"trials" jsonschema_description:"Number of trials folded into the result"`
	Counts        map[string]uint64  `json:"counts" jsonschema_description:"Occurrences per compound result label"`
	Probabilities map[string]float64 `json:"probabilities" jsonschema_description:"Empirical probability per label"`
}

// Server wraps the simulation engine and exposes it as an MCP server.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer() *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("mendel-mcp", mendel.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Estimate outcome probabilities by running a Monte Carlo simulation of a weighted experiment definition."),
		mcp.WithString("definition", mcp.Required(),
			mcp.Description("Experiment definition as a JSON document: spaces, draws, rule, trials, optional seed and policy")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	raw, _ := args["definition"].(string)
	if raw == "" {
		return SimulateResponse{}, fmt.Errorf("definition argument is required")
	}

	def, err := definition.ParseJSON([]byte(raw))
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("parsing definition: %w", err)
	}
	exp, err := def.Compile()
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("compiling definition: %w", err)
	}

	opts := []mendel.Option{}
	if def.Seed != nil {
		opts = append(opts, mendel.WithSeed(*def.Seed))
	}
	policy, err := mendel.ParseErrorPolicy(def.Policy)
	if err != nil {
		return SimulateResponse{}, err
	}
	opts = append(opts, mendel.WithErrorPolicy(policy))

	dist, err := mendel.Simulate(ctx, exp, def.Trials, opts...)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", err)
	}

	resp := SimulateResponse{
		Trials:        dist.TotalTrials(),
		Counts:        make(map[string]uint64),
		Probabilities: make(map[string]float64),
	}
	for label := range dist.Labels() {
		resp.Counts[label] = dist.Count(label)
		resp.Probabilities[label] = dist.ProbabilityOf(label)
	}
	return resp, nil
}
