package types

// Product is a priced catalog entry. Mutation goes through setters that re-validate.
type Product struct {
	id    string
	name  string
	price float64
}

func NewProduct(id, name string, price float64) (*Product, error) {
	p := &Product{id: id, name: name, price: price}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) validate() error {
	switch {
	case p.id == "":
		return invalid("product", "id", ErrEmptyID)
	case p.name == "":
		return invalid("product", "name", ErrEmptyName)
	}
	if err := checkPrice(p.price); err != nil {
		return invalid("product", "price", err)
	}
	return nil
}

func (p *Product) ID() string     { return p.id }
func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }

func (p *Product) ChangeName(name string) error {
	if name == "" {
		return invalid("product", "name", ErrEmptyName)
	}
	p.name = name
	return nil
}

func (p *Product) ChangePrice(price float64) error {
	if err := checkPrice(price); err != nil {
		return invalid("product", "price", err)
	}
	p.price = price
	return nil
}
