package types

// Customer is identified by an externally assigned id. The address is optional until
// ChangeAddress is called; reward points only ever increase.
type Customer struct {
	id           string
	name         string
	address      Address
	active       bool
	rewardPoints int
}

// NewCustomer builds an inactive customer without address
func NewCustomer(id, name string) (*Customer, error) {
	c := &Customer{id: id, name: name}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) validate() error {
	if c.id == "" {
		return invalid("customer", "id", ErrEmptyID)
	}
	if c.name == "" {
		return invalid("customer", "name", ErrEmptyName)
	}
	return nil
}

func (c *Customer) ID() string        { return c.id }
func (c *Customer) Name() string      { return c.name }
func (c *Customer) IsActive() bool    { return c.active }
func (c *Customer) RewardPoints() int { return c.rewardPoints }

// Address returns the current address and whether one was set
func (c *Customer) Address() (Address, bool) {
	return c.address, !c.address.IsZero()
}

// ChangeName renames the customer; the old name is kept on failure
func (c *Customer) ChangeName(name string) error {
	if name == "" {
		return invalid("customer", "name", ErrEmptyName)
	}
	c.name = name
	return nil
}

// ChangeAddress replaces the customer's address
func (c *Customer) ChangeAddress(address Address) error {
	if err := address.validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

// Activate requires an address
func (c *Customer) Activate() error {
	if c.address.IsZero() {
		return invalid("customer", "address", ErrAddressRequired)
	}
	c.active = true
	return nil
}

func (c *Customer) Deactivate() {
	c.active = false
}

// AddRewardPoints accumulates points; negative amounts are rejected
func (c *Customer) AddRewardPoints(points int) error {
	if points < 0 {
		return invalid("customer", "reward_points", ErrNegativePoints)
	}
	c.rewardPoints += points
	return nil
}
