package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/gocheckout/internal/checkout"
	"github.com/dshills/gocheckout/internal/storage"
	"github.com/dshills/gocheckout/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound         = -32001 // Referenced entity does not exist
	ErrorCodeAlreadyExists    = -32002 // Entity id already taken
	ErrorCodeValidationFailed = -32003 // Entity invariant violated
)

// handleRegisterCustomer handles the register_customer tool invocation
func (s *Server) handleRegisterCustomer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}

	c, err := s.service.RegisterCustomer(ctx, getStringDefault(args, "id", ""), name)
	if err != nil {
		return nil, s.toolError("register customer", err)
	}
	return mcp.NewToolResultText(formatJSON(newCustomerView(c))), nil
}

// handleChangeCustomerAddress handles the change_customer_address tool invocation
func (s *Server) handleChangeCustomerAddress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	number, ok := getInt(args, "number")
	if !ok {
		return nil, missingParam("number")
	}

	addr, err := types.NewAddress(
		getStringDefault(args, "street", ""),
		number,
		getStringDefault(args, "zip", ""),
		getStringDefault(args, "city", ""),
	)
	if err != nil {
		return nil, s.toolError("change customer address", err)
	}

	c, err := s.service.ChangeCustomerAddress(ctx, id, addr)
	if err != nil {
		return nil, s.toolError("change customer address", err)
	}
	return mcp.NewToolResultText(formatJSON(newCustomerView(c))), nil
}

// handleSetCustomerActive handles the set_customer_active tool invocation
func (s *Server) handleSetCustomerActive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}

	c, err := s.service.SetCustomerActive(ctx, id, getBoolDefault(args, "active", true))
	if err != nil {
		return nil, s.toolError("set customer active", err)
	}
	return mcp.NewToolResultText(formatJSON(newCustomerView(c))), nil
}

// handleAddRewardPoints handles the add_reward_points tool invocation
func (s *Server) handleAddRewardPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	points, ok := getInt(args, "points")
	if !ok {
		return nil, missingParam("points")
	}

	c, err := s.service.AddRewardPoints(ctx, id, points)
	if err != nil {
		return nil, s.toolError("add reward points", err)
	}
	return mcp.NewToolResultText(formatJSON(newCustomerView(c))), nil
}

// handleGetCustomer handles the get_customer tool invocation
func (s *Server) handleGetCustomer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}

	c, err := s.service.GetCustomer(ctx, id)
	if err != nil {
		return nil, s.toolError("get customer", err)
	}
	return mcp.NewToolResultText(formatJSON(newCustomerView(c))), nil
}

// handleCreateProducts handles the create_products tool invocation
func (s *Server) handleCreateProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	raw, ok := args["products"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, missingParam("products")
	}

	inputs := make([]checkout.ProductInput, 0, len(raw))
	for i, entry := range raw {
		p, ok := entry.(map[string]interface{})
		if !ok {
			return nil, invalidParam(fmt.Sprintf("products[%d]", i), "must be an object")
		}
		price, ok := p["price"].(float64)
		if !ok {
			return nil, invalidParam(fmt.Sprintf("products[%d].price", i), "must be a number")
		}
		inputs = append(inputs, checkout.ProductInput{
			ID:    getStringDefault(p, "id", ""),
			Name:  getStringDefault(p, "name", ""),
			Price: price,
		})
	}

	products, err := s.service.CreateProducts(ctx, inputs)
	if err != nil {
		return nil, s.toolError("create products", err)
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"created":  len(views),
		"products": views,
	})), nil
}

// handlePlaceOrder handles the place_order tool invocation
func (s *Server) handlePlaceOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	customerID, err := requireString(args, "customer_id")
	if err != nil {
		return nil, err
	}
	items, err := parseItems(args)
	if err != nil {
		return nil, err
	}

	order, err := s.service.PlaceOrder(ctx, checkout.PlaceOrderInput{
		ID:         getStringDefault(args, "id", ""),
		CustomerID: customerID,
		Items:      items,
	})
	if err != nil {
		return nil, s.toolError("place order", err)
	}
	return mcp.NewToolResultText(formatJSON(newOrderView(order))), nil
}

// handleReplaceOrderItems handles the replace_order_items tool invocation
func (s *Server) handleReplaceOrderItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	orderID, err := requireString(args, "order_id")
	if err != nil {
		return nil, err
	}
	items, err := parseItems(args)
	if err != nil {
		return nil, err
	}

	order, err := s.service.ReplaceOrderItems(ctx, orderID, items)
	if err != nil {
		return nil, s.toolError("replace order items", err)
	}
	return mcp.NewToolResultText(formatJSON(newOrderView(order))), nil
}

// handleGetOrder handles the get_order tool invocation
func (s *Server) handleGetOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}

	order, err := s.service.GetOrder(ctx, id)
	if err != nil {
		return nil, s.toolError("get order", err)
	}
	return mcp.NewToolResultText(formatJSON(newOrderView(order))), nil
}

// handleListOrders handles the list_orders tool invocation
func (s *Server) handleListOrders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orders, err := s.service.ListOrders(ctx)
	if err != nil {
		return nil, s.toolError("list orders", err)
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"count":  len(views),
		"orders": views,
	})), nil
}

// Helper functions

// parseItems reads the "items" argument into service inputs
func parseItems(args map[string]interface{}) ([]checkout.ItemInput, error) {
	raw, ok := args["items"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, missingParam("items")
	}

	items := make([]checkout.ItemInput, 0, len(raw))
	for i, entry := range raw {
		item, ok := entry.(map[string]interface{})
		if !ok {
			return nil, invalidParam(fmt.Sprintf("items[%d]", i), "must be an object")
		}
		productID, ok := item["product_id"].(string)
		if !ok || productID == "" {
			return nil, invalidParam(fmt.Sprintf("items[%d].product_id", i), "missing or empty")
		}
		quantity, ok := getInt(item, "quantity")
		if !ok {
			return nil, invalidParam(fmt.Sprintf("items[%d].quantity", i), "must be an integer")
		}
		items = append(items, checkout.ItemInput{
			ID:        getStringDefault(item, "id", ""),
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	return items, nil
}

// toolError maps service errors onto MCP error codes
func (s *Server) toolError(op string, err error) error {
	data := map[string]interface{}{"error": err.Error()}

	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		data["entity"] = verr.Entity
		data["field"] = verr.Field
		return newMCPError(ErrorCodeValidationFailed, op+": validation failed", data)
	case storage.IsNotFound(err):
		return newMCPError(ErrorCodeNotFound, op+": not found", data)
	case storage.IsAlreadyExists(err):
		return newMCPError(ErrorCodeAlreadyExists, op+": already exists", data)
	default:
		s.log.Error("tool failed", "op", op, "error", err)
		return newMCPError(ErrorCodeInternalError, op+" failed", data)
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func missingParam(name string) error {
	return newMCPError(ErrorCodeInvalidParams, name+" parameter is required", map[string]interface{}{
		"param":  name,
		"reason": "missing or empty",
	})
}

func invalidParam(name, reason string) error {
	return newMCPError(ErrorCodeInvalidParams, "invalid "+name, map[string]interface{}{
		"param":  name,
		"reason": reason,
	})
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// requireString extracts a non-empty string parameter
func requireString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", missingParam(key)
	}
	return val, nil
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getInt extracts an integer parameter; JSON numbers arrive as float64
func getInt(args map[string]interface{}, key string) (int, bool) {
	switch val := args[key].(type) {
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	case int:
		return val, true
	}
	return 0, false
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
