package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	t.Run("should create unsaved order without items", func(t *testing.T) {
		o, err := order.NewOrder(orderDate, "test")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.False(t, o.ID().IsAssigned())
		assert.Equal(t, orderDate, o.Date())
		assert.Equal(t, "test", o.Description())
		assert.Empty(t, o.Items())
		assert.Zero(t, o.TotalQuantity())
	})

	t.Run("should drop time of day and zone", func(t *testing.T) {
		local := time.Date(2024, 3, 15, 23, 30, 0, 0, time.FixedZone("UTC+5", 5*60*60))

		o, err := order.NewOrder(local, "")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), o.Date())
	})

	t.Run("should allow empty description", func(t *testing.T) {
		o, err := order.NewOrder(orderDate, "")
		require.NoError(t, err)
		assert.Empty(t, o.Description())
	})

	t.Run("should fail without date", func(t *testing.T) {
		o, err := order.NewOrder(time.Time{}, "test")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value order is rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is rejected", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignID(t *testing.T) {
	t.Run("assigns identity once", func(t *testing.T) {
		o, _ := order.NewOrder(orderDate, "test")

		require.NoError(t, o.AssignID(10))
		assert.Equal(t, kernel.ID(10), o.ID())

		require.ErrorIs(t, o.AssignID(11), order.ErrIdentityIsAlreadyAssigned)
		assert.Equal(t, kernel.ID(10), o.ID())
	})

	t.Run("rejects unassigned identity", func(t *testing.T) {
		o, _ := order.NewOrder(orderDate, "test")
		require.ErrorIs(t, o.AssignID(0), errs.ErrValueIsRequired)
	})
}

func TestOrder_NewItem(t *testing.T) {
	t.Run("should fail before the order is persisted", func(t *testing.T) {
		o, _ := order.NewOrder(orderDate, "test")

		item, err := o.NewItem("widget", 3)

		require.ErrorIs(t, err, order.ErrOrderIsNotPersisted)
		assert.Nil(t, item)
	})

	t.Run("should reference the order by identity", func(t *testing.T) {
		o, _ := order.NewOrder(orderDate, "test")
		require.NoError(t, o.AssignID(5))

		item, err := o.NewItem("widget", 3)

		require.NoError(t, err)
		assert.Equal(t, kernel.ID(5), item.OrderID())
		assert.False(t, item.ID().IsAssigned())
		assert.Equal(t, "widget", item.Name())
		assert.Equal(t, 3, item.Quantity())
		assert.Empty(t, o.Items(), "item is added only after it is persisted")
	})

	t.Run("should accept zero quantity", func(t *testing.T) {
		o, _ := order.NewOrder(orderDate, "test")
		require.NoError(t, o.AssignID(5))

		_, err := o.NewItem("sample", 0)
		require.NoError(t, err)
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		o, _ := order.NewOrder(orderDate, "test")
		require.NoError(t, o.AssignID(5))

		_, err := o.NewItem("widget", -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "-1 is quantity")
	})
}

func TestOrder_AddItem(t *testing.T) {
	newPersistedOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(orderDate, "test")
		require.NoError(t, err)
		require.NoError(t, o.AssignID(1))
		return o
	}

	t.Run("appends persisted items in order", func(t *testing.T) {
		o := newPersistedOrder(t)
		widget, _ := o.NewItem("widget", 3)
		gadget, _ := o.NewItem("gadget", 1)
		require.NoError(t, widget.AssignID(100))
		require.NoError(t, gadget.AssignID(101))

		require.NoError(t, o.AddItem(widget))
		require.NoError(t, o.AddItem(gadget))

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "widget", items[0].Name())
		assert.Equal(t, "gadget", items[1].Name())
		assert.Equal(t, 4, o.TotalQuantity())
	})

	t.Run("rejects unsaved item", func(t *testing.T) {
		o := newPersistedOrder(t)
		item, _ := o.NewItem("widget", 3)

		require.ErrorIs(t, o.AddItem(item), errs.ErrValueIsRequired)
	})

	t.Run("rejects item of another order", func(t *testing.T) {
		o := newPersistedOrder(t)
		foreign, err := order.RestoreItem(7, 99, "widget", 1)
		require.NoError(t, err)

		require.ErrorIs(t, o.AddItem(foreign), order.ErrItemBelongsToAnotherOrder)
	})

	t.Run("rejects zero value item", func(t *testing.T) {
		o := newPersistedOrder(t)
		require.ErrorIs(t, o.AddItem(&order.Item{}), order.ErrItemIsNotConstructed)
	})

	t.Run("items copy does not alias internal slice", func(t *testing.T) {
		o := newPersistedOrder(t)
		item, _ := order.RestoreItem(1, 1, "widget", 1)
		require.NoError(t, o.AddItem(item))

		items := o.Items()
		items[0] = nil

		assert.NotNil(t, o.Items()[0])
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores order with items", func(t *testing.T) {
		widget, _ := order.RestoreItem(10, 3, "widget", 3)
		gadget, _ := order.RestoreItem(11, 3, "gadget", 1)

		o, err := order.RestoreOrder(3, orderDate, "test", []*order.Item{widget, gadget})

		require.NoError(t, err)
		assert.Equal(t, kernel.ID(3), o.ID())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("requires identity", func(t *testing.T) {
		_, err := order.RestoreOrder(0, orderDate, "test", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects foreign items", func(t *testing.T) {
		foreign, _ := order.RestoreItem(10, 4, "widget", 3)

		_, err := order.RestoreOrder(3, orderDate, "test", []*order.Item{foreign})

		require.ErrorIs(t, err, order.ErrItemBelongsToAnotherOrder)
	})
}

func TestRestoreItem(t *testing.T) {
	item, err := order.RestoreItem(1, 2, "widget", 3)
	require.NoError(t, err)
	require.NoError(t, item.Validate())
	require.ErrorIs(t, item.AssignID(5), order.ErrIdentityIsAlreadyAssigned)

	_, err = order.RestoreItem(0, 2, "widget", 3)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.RestoreItem(1, 0, "widget", 3)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
