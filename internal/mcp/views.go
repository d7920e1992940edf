package mcp

import (
	"github.com/dshills/gocheckout/pkg/types"
)

// JSON shapes returned by the tools

type addressView struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

type customerView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Active       bool         `json:"active"`
	RewardPoints int          `json:"reward_points"`
	Address      *addressView `json:"address,omitempty"`
}

type productView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type itemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type orderView struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Total      float64    `json:"total"`
	Items      []itemView `json:"items"`
}

func newCustomerView(c *types.Customer) customerView {
	v := customerView{
		ID:           c.ID(),
		Name:         c.Name(),
		Active:       c.IsActive(),
		RewardPoints: c.RewardPoints(),
	}
	if addr, ok := c.Address(); ok {
		v.Address = &addressView{
			Street: addr.Street(),
			Number: addr.Number(),
			Zip:    addr.Zip(),
			City:   addr.City(),
		}
	}
	return v
}

func newProductView(p *types.Product) productView {
	return productView{ID: p.ID(), Name: p.Name(), Price: p.Price()}
}

func newOrderView(o *types.Order) orderView {
	items := o.Items()
	v := orderView{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Total:      o.Total(),
		Items:      make([]itemView, 0, len(items)),
	}
	for _, it := range items {
		v.Items = append(v.Items, itemView{
			ID:        it.ID(),
			ProductID: it.ProductID(),
			Name:      it.Name(),
			Price:     it.Price(),
			Quantity:  it.Quantity(),
			Total:     it.Total(),
		})
	}
	return v
}
