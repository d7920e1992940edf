package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, id string, price float64, quantity int) OrderItem {
	t.Helper()
	item, err := NewOrderItem(id, "Product "+id, price, "p"+id, quantity)
	require.NoError(t, err)
	return item
}

func TestNewOrderItem(t *testing.T) {
	item, err := NewOrderItem("1", "Product 1", 10, "123", 2)
	require.NoError(t, err)

	assert.Equal(t, "1", item.ID())
	assert.Equal(t, "Product 1", item.Name())
	assert.Equal(t, 10.0, item.Price())
	assert.Equal(t, "123", item.ProductID())
	assert.Equal(t, 2, item.Quantity())
	assert.Equal(t, 20.0, item.Total())
}

func TestNewOrderItem_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		itemName  string
		price     float64
		productID string
		quantity  int
		want      error
	}{
		{"zero quantity", "1", "P", 10, "p", 0, ErrNonPositiveQuantity},
		{"negative quantity", "1", "P", 10, "p", -3, ErrNonPositiveQuantity},
		{"empty id", "", "P", 10, "p", 1, ErrEmptyID},
		{"empty name", "1", "", 10, "p", 1, ErrEmptyName},
		{"negative price", "1", "P", -10, "p", 1, ErrNegativePrice},
		{"empty product", "1", "P", 10, "", 1, ErrEmptyProductID},
		{"NaN price", "1", "P", math.NaN(), "p", 1, ErrNonFinitePrice},
		{"infinite price", "1", "P", math.Inf(1), "p", 1, ErrNonFinitePrice},
		{"negative infinite price", "1", "P", math.Inf(-1), "p", 1, ErrNonFinitePrice},
		{"total overflows", "1", "P", math.MaxFloat64 / 2, "p", 4, ErrNonFiniteTotal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderItem(tt.id, tt.itemName, tt.price, tt.productID, tt.quantity)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewOrder(t *testing.T) {
	item1 := mustItem(t, "1", 10, 2)
	item2 := mustItem(t, "2", 25, 5)

	order, err := NewOrder("123", "c1", []OrderItem{item1, item2})
	require.NoError(t, err)

	assert.Equal(t, "123", order.ID())
	assert.Equal(t, "c1", order.CustomerID())
	assert.Equal(t, []OrderItem{item1, item2}, order.Items())
	assert.Equal(t, 145.0, order.Total())
}

func TestNewOrder_Invalid(t *testing.T) {
	item := mustItem(t, "1", 10, 1)

	_, err := NewOrder("1", "c1", nil)
	assert.ErrorIs(t, err, ErrNoItems)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewOrder("1", "c1", []OrderItem{})
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = NewOrder("", "c1", []OrderItem{item})
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewOrder("1", "", []OrderItem{item})
	assert.ErrorIs(t, err, ErrEmptyCustomerID)

	_, err = NewOrder("1", "c1", []OrderItem{item, {}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrder_ItemsIsACopy(t *testing.T) {
	order, err := NewOrder("1", "c1", []OrderItem{mustItem(t, "1", 10, 1)})
	require.NoError(t, err)

	items := order.Items()
	items[0] = mustItem(t, "9", 1000, 9)

	assert.Equal(t, "1", order.Items()[0].ID())
	assert.Equal(t, 10.0, order.Total())
}

func TestOrder_ChangeItems(t *testing.T) {
	order, err := NewOrder("1", "c1", []OrderItem{mustItem(t, "1", 10, 1)})
	require.NoError(t, err)

	replacement := []OrderItem{mustItem(t, "4", 40, 4), mustItem(t, "5", 50, 5)}
	require.NoError(t, order.ChangeItems(replacement))
	assert.Equal(t, replacement, order.Items())
	assert.Equal(t, 410.0, order.Total())

	assert.ErrorIs(t, order.ChangeItems(nil), ErrNoItems)
	assert.Equal(t, replacement, order.Items())
}

func TestOrder_TotalMatchesSumOfItems(t *testing.T) {
	var items []OrderItem
	var want float64
	for i := 1; i <= 6; i++ {
		price := 10 * float64(i)
		items = append(items, mustItem(t, string(rune('0'+i)), price, i))
		want += price * float64(i)
	}

	order, err := NewOrder("111", "123", items)
	require.NoError(t, err)
	assert.Equal(t, want, order.Total())
}

func TestNewOrder_TotalMustBeFinite(t *testing.T) {
	// each item is fine on its own, their sum is not
	big := mustItem(t, "1", math.MaxFloat64/2, 1)
	bigger := mustItem(t, "2", math.MaxFloat64/2, 1)
	huge := mustItem(t, "3", math.MaxFloat64/2, 1)

	_, err := NewOrder("o1", "c1", []OrderItem{big, bigger, huge})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrNonFiniteTotal)

	order, err := NewOrder("o1", "c1", []OrderItem{big})
	require.NoError(t, err)
	assert.ErrorIs(t, order.ChangeItems([]OrderItem{big, bigger, huge}), ErrNonFiniteTotal)
	assert.Equal(t, []OrderItem{big}, order.Items())
}
