package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus(t *testing.T) {
	names := map[OrderStatus]string{
		OrderStatusCreated:   "CREATED",
		OrderStatusPaid:      "PAID",
		OrderStatusShipped:   "SHIPPED",
		OrderStatusCompleted: "COMPLETED",
		OrderStatusCanceled:  "CANCELED",
	}
	for st, name := range names {
		assert.Equal(t, name, st.String())
		assert.True(t, st.Valid())
	}

	assert.Equal(t, "UNKNOWN", OrderStatus(5).String())
	assert.False(t, OrderStatus(5).Valid())
	assert.False(t, OrderStatus(-1).Valid())
}

func TestOrderItem_Subtotal(t *testing.T) {
	it := OrderItem{Price: decimal.RequireFromString("0.10"), Quantity: 3}
	// exact, no float drift
	assert.Equal(t, "0.30", it.Subtotal().StringFixed(2))
	assert.True(t, it.Subtotal().Equal(decimal.RequireFromString("0.3")))
}

func TestAddress_SnapshotIsACopy(t *testing.T) {
	a := Address{Name: "Taro", Phone: "090", PostalCode: "150-0001", Province: "Tokyo", City: "Shibuya", Detail: "1-2-3"}
	snap := a.Snapshot()

	a.City = "Minato"
	assert.Equal(t, "Shibuya", snap.City)
	assert.Equal(t, "150-0001", snap.PostalCode)
}
