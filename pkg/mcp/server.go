package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/homai-supla/pkg/device"
)

// Server wraps the MCP server with the Supla entity controls
type Server struct {
	mcpServer  *server.MCPServer
	controller device.Controller
}

// NewServer creates a new MCP server for entity control. State changes are
// validated by the controller against each entity's schema.
func NewServer(controller device.Controller) *Server {
	s := &Server{
		controller: controller,
	}

	s.mcpServer = server.NewMCPServer(
		"homai-supla",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
