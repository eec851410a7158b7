// Package mcp exposes the engine as an MCP server so AI oracles can drive a
// walk directly: fetch the start node, answer prompts, resolve next nodes.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arborlab/arbor"
	"github.com/arborlab/arbor/internal/codec"
	"github.com/arborlab/arbor/internal/presentation/graph"
	"github.com/arborlab/arbor/internal/validator"
	"github.com/arborlab/arbor/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NodeResponse is the unified tool output: the node in question plus the
// rendered question an oracle should answer.
type NodeResponse struct {
	Node     domain.Node `json:"node" jsonschema_description:"The decision node"`
	Question string      `json:"question" jsonschema_description:"The rendered question to answer"`
	Terminal bool        `json:"terminal" jsonschema_description:"True if this node ends the walk"`
}

// ResolveToolResponse is the output of the resolve_next tool.
type ResolveToolResponse struct {
	NextNodeID string       `json:"next_node_id,omitempty" jsonschema_description:"ID of the next node, empty if the walk stops"`
	NextNode   *domain.Node `json:"next_node,omitempty" jsonschema_description:"The next node, if any"`
	Done       bool         `json:"done" jsonschema_description:"True when the walk cannot proceed"`
}

// ValidateToolResponse is the output of the validate_tree tool.
type ValidateToolResponse struct {
	Valid bool   `json:"valid" jsonschema_description:"Whether the tree passed validation"`
	Error string `json:"error,omitempty" jsonschema_description:"The validation failure, if any"`
}

// Server wraps the Arbor engine and exposes it as an MCP server.
type Server struct {
	engine    *arbor.Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine *arbor.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("get_start_node",
		mcp.WithDescription("Get the entry node of the active decision tree."),
		mcp.WithOutputSchema[NodeResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleGetStartNode))

	nodeTool := mcp.NewTool("get_node",
		mcp.WithDescription("Get a decision node by id."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("The node ID to fetch")),
		mcp.WithOutputSchema[NodeResponse](),
	)
	s.mcpServer.AddTool(nodeTool, mcp.NewStructuredToolHandler(s.handleGetNode))

	resolveTool := mcp.NewTool("resolve_next",
		mcp.WithDescription("Resolve the next node given a current node and a free-text answer."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Current node ID")),
		mcp.WithString("response", mcp.Required(), mcp.Description("Free-text answer to the node's prompt")),
		mcp.WithOutputSchema[ResolveToolResponse](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolveNext))

	validateTool := mcp.NewTool("validate_tree",
		mcp.WithDescription("Statically validate a tree document (JSON or YAML) without publishing it."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The raw tree definition")),
		mcp.WithOutputSchema[ValidateToolResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateTree))
}

func (s *Server) handleGetStartNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NodeResponse, error) {
	node, err := s.engine.StartNode()
	if err != nil {
		return NodeResponse{}, fmt.Errorf("no start node: %w", err)
	}
	return nodeResponse(node), nil
}

func (s *Server) handleGetNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NodeResponse, error) {
	nodeID, _ := args["node_id"].(string)
	node, ok := s.engine.Node(nodeID)
	if !ok {
		return NodeResponse{}, fmt.Errorf("node %q not found", nodeID)
	}
	return nodeResponse(node), nil
}

func (s *Server) handleResolveNext(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveToolResponse, error) {
	nodeID, _ := args["node_id"].(string)
	response, _ := args["response"].(string)

	node, ok := s.engine.Node(nodeID)
	if !ok {
		return ResolveToolResponse{}, fmt.Errorf("node %q not found", nodeID)
	}

	nextID := s.engine.Resolve(node, response)
	if nextID == "" {
		return ResolveToolResponse{Done: true}, nil
	}

	out := ResolveToolResponse{NextNodeID: nextID}
	if next, ok := s.engine.Node(nextID); ok {
		out.NextNode = &next
		out.Done = next.IsTerminal()
	}
	return out, nil
}

func (s *Server) handleValidateTree(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateToolResponse, error) {
	document, _ := args["document"].(string)

	tree, err := codec.Decode([]byte(document))
	if err == nil {
		err = validator.ValidateTree(tree)
	}
	if err != nil {
		return ValidateToolResponse{Valid: false, Error: err.Error()}, nil
	}
	return ValidateToolResponse{Valid: true}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("arbor://tree", "Active Decision Tree",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tree, err := s.engine.Tree()
		if err != nil {
			return nil, fmt.Errorf("failed to read active tree: %w", err)
		}
		jsonBytes, _ := json.Marshal(tree)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://tree",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource("arbor://tree/graph", "Mermaid Graph of the Active Tree",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tree, err := s.engine.Tree()
		if err != nil {
			return nil, fmt.Errorf("failed to read active tree: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://tree/graph",
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(tree),
			},
		}, nil
	})
}

func nodeResponse(node domain.Node) NodeResponse {
	return NodeResponse{
		Node:     node,
		Question: arbor.RenderQuestion(node),
		Terminal: node.IsTerminal(),
	}
}
