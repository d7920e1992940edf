package mcp

import (
	"context"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/gocheckout/internal/checkout"
	"github.com/dshills/gocheckout/internal/logger"
)

const (
	// ServerName is the MCP server name
	ServerName = "gocheckout"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	service *checkout.Service
	log     *logger.Logger
}

// NewServer creates a new MCP server exposing svc as tools
func NewServer(svc *checkout.Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcp:     mcpServer,
		service: svc,
		log:     log,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until stdin closes or ctx is done
func (s *Server) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// ServeIO serves the MCP protocol over the given streams
func (s *Server) ServeIO(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info("MCP server ready", "name", ServerName, "version", ServerVersion)
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Customers
	s.mcp.AddTool(registerCustomerTool(), s.handleRegisterCustomer)
	s.mcp.AddTool(changeCustomerAddressTool(), s.handleChangeCustomerAddress)
	s.mcp.AddTool(setCustomerActiveTool(), s.handleSetCustomerActive)
	s.mcp.AddTool(addRewardPointsTool(), s.handleAddRewardPoints)
	s.mcp.AddTool(getCustomerTool(), s.handleGetCustomer)

	// Products
	s.mcp.AddTool(createProductsTool(), s.handleCreateProducts)

	// Orders
	s.mcp.AddTool(placeOrderTool(), s.handlePlaceOrder)
	s.mcp.AddTool(replaceOrderItemsTool(), s.handleReplaceOrderItems)
	s.mcp.AddTool(getOrderTool(), s.handleGetOrder)
	s.mcp.AddTool(listOrdersTool(), s.handleListOrders)
}
