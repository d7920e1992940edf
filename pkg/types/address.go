package types

import "fmt"

// Address is an immutable value object. A customer's address is replaced, never mutated.
type Address struct {
	street string
	number int
	zip    string
	city   string
}

// NewAddress validates and builds an Address
func NewAddress(street string, number int, zip, city string) (Address, error) {
	a := Address{street: street, number: number, zip: zip, city: city}
	if err := a.validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (a Address) validate() error {
	switch {
	case a.street == "":
		return invalid("address", "street", ErrEmptyStreet)
	case a.number <= 0:
		return invalid("address", "number", ErrNonPositiveNumber)
	case a.zip == "":
		return invalid("address", "zip", ErrEmptyZip)
	case a.city == "":
		return invalid("address", "city", ErrEmptyCity)
	}
	return nil
}

func (a Address) Street() string { return a.street }
func (a Address) Number() int    { return a.number }
func (a Address) Zip() string    { return a.zip }
func (a Address) City() string   { return a.city }

// IsZero reports whether a is the zero Address (never a valid one)
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.street, a.number, a.zip, a.city)
}
