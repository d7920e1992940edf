// Package mcp implements the Model Context Protocol (MCP) server for gocheckout.
//
// The MCP server exposes the checkout service as tools:
//   - register_customer, change_customer_address, set_customer_active,
//     add_reward_points, get_customer
//   - create_products
//   - place_order, replace_order_items, get_order, list_orders
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Logs go to stderr; stdout is reserved for the protocol.
//
// # Tool: place_order
//
//	Request:
//	{
//	  "name": "place_order",
//	  "arguments": {
//	    "id": "123",
//	    "customer_id": "123",
//	    "items": [
//	      {"id": "1", "product_id": "123", "quantity": 2}
//	    ]
//	  }
//	}
//
//	Response:
//	{
//	  "id": "123",
//	  "customer_id": "123",
//	  "total": 20,
//	  "items": [
//	    {"id": "1", "product_id": "123", "name": "Product 1", "price": 10, "quantity": 2, "total": 20}
//	  ]
//	}
//
// Item name and price are copied from the stored product when the order is placed.
// Omitted ids are generated.
//
// # Error Handling
//
// Tool failures are returned as *MCPError:
//
//	{
//	  "error": {
//	    "code": -32003,
//	    "message": "place order: validation failed",
//	    "data": {"entity": "order_item", "field": "quantity", "error": "..."}
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing or mistyped arguments)
//   - -32603: Internal error (database, event handler)
//   - -32001: Customer, product or order not found
//   - -32002: Id already exists
//   - -32003: Entity validation failed
//
// # MCP Client Configuration
//
//	{
//	  "mcpServers": {
//	    "checkout": {
//	      "command": "/usr/local/bin/checkout",
//	      "env": {
//	        "CHECKOUT_DB_PATH": "/var/lib/checkout/checkout.db"
//	      }
//	    }
//	  }
//	}
package mcp
