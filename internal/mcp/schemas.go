package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// itemsSchema describes the order line array shared by place_order and replace_order_items
func itemsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Order lines; name and price are copied from the product",
		"minItems":    1,
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Item id (generated when omitted)",
				},
				"product_id": map[string]interface{}{
					"type":        "string",
					"description": "Id of an existing product",
				},
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "Number of units (> 0)",
					"minimum":     1,
				},
			},
			"required": []string{"product_id", "quantity"},
		},
	}
}

func idProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// registerCustomerTool returns the tool definition for register_customer
func registerCustomerTool() mcp.Tool {
	return mcp.Tool{
		Name:        "register_customer",
		Description: "Register a new inactive customer",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Customer id (generated when omitted)"),
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Customer name",
				},
			},
			Required: []string{"name"},
		},
	}
}

// changeCustomerAddressTool returns the tool definition for change_customer_address
func changeCustomerAddressTool() mcp.Tool {
	return mcp.Tool{
		Name:        "change_customer_address",
		Description: "Replace the address of a customer",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Customer id"),
				"street": map[string]interface{}{
					"type": "string",
				},
				"number": map[string]interface{}{
					"type":    "integer",
					"minimum": 1,
				},
				"zip": map[string]interface{}{
					"type": "string",
				},
				"city": map[string]interface{}{
					"type": "string",
				},
			},
			Required: []string{"id", "street", "number", "zip", "city"},
		},
	}
}

// setCustomerActiveTool returns the tool definition for set_customer_active
func setCustomerActiveTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_customer_active",
		Description: "Activate or deactivate a customer. Activation requires an address.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Customer id"),
				"active": map[string]interface{}{
					"type":    "boolean",
					"default": true,
				},
			},
			Required: []string{"id"},
		},
	}
}

// addRewardPointsTool returns the tool definition for add_reward_points
func addRewardPointsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_reward_points",
		Description: "Add reward points to a customer",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Customer id"),
				"points": map[string]interface{}{
					"type":    "integer",
					"minimum": 0,
				},
			},
			Required: []string{"id", "points"},
		},
	}
}

// getCustomerTool returns the tool definition for get_customer
func getCustomerTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_customer",
		Description: "Fetch a customer by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Customer id"),
			},
			Required: []string{"id"},
		},
	}
}

// createProductsTool returns the tool definition for create_products
func createProductsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "create_products",
		Description: "Create one or more products",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"products": map[string]interface{}{
					"type":     "array",
					"minItems": 1,
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"id": idProperty("Product id (generated when omitted)"),
							"name": map[string]interface{}{
								"type": "string",
							},
							"price": map[string]interface{}{
								"type":    "number",
								"minimum": 0,
							},
						},
						"required": []string{"name", "price"},
					},
				},
			},
			Required: []string{"products"},
		},
	}
}

// placeOrderTool returns the tool definition for place_order
func placeOrderTool() mcp.Tool {
	return mcp.Tool{
		Name:        "place_order",
		Description: "Place an order for an existing customer",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id":          idProperty("Order id (generated when omitted)"),
				"customer_id": idProperty("Id of an existing customer"),
				"items":       itemsSchema(),
			},
			Required: []string{"customer_id", "items"},
		},
	}
}

// replaceOrderItemsTool returns the tool definition for replace_order_items
func replaceOrderItemsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "replace_order_items",
		Description: "Replace every item of an order; the total is recomputed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"order_id": idProperty("Order id"),
				"items":    itemsSchema(),
			},
			Required: []string{"order_id", "items"},
		},
	}
}

// getOrderTool returns the tool definition for get_order
func getOrderTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_order",
		Description: "Fetch an order with its items",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": idProperty("Order id"),
			},
			Required: []string{"id"},
		},
	}
}

// listOrdersTool returns the tool definition for list_orders
func listOrdersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_orders",
		Description: "List all orders in creation order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
