// ABOUTME: MCP server setup for the swim records book.
// ABOUTME: Wraps MCP server with the persistence gateway and health-data source.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/swimbook/internal/healthdata"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options carries the display settings the tools need.
type Options struct {
	// PoolLength is the lap length used for splits. Zero means 50 m.
	PoolLength int
	// Location is the zone used for calendar days. Nil means local time.
	Location *time.Location
	// Health is the health-data source. Nil disables the status tool.
	Health healthdata.Source
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer  *mcp.Server
	store      *storage.Store
	health     healthdata.Source
	poolLength int
	loc        *time.Location
}

// NewServer creates a new MCP server over the given gateway.
func NewServer(store *storage.Store, opts Options) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "swim",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		store:      store,
		health:     opts.Health,
		poolLength: opts.PoolLength,
		loc:        opts.Location,
	}
	if s.poolLength <= 0 {
		s.poolLength = models.DefaultPoolLength
	}
	if s.loc == nil {
		s.loc = time.Local
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
