package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

func TestPublish_FansOutToAllListeners(t *testing.T) {
	n := NewNotifier()

	var first, second [][]domain.LineItem
	n.Subscribe(func(cartID string, items []domain.LineItem) { first = append(first, items) })
	n.Subscribe(func(cartID string, items []domain.LineItem) { second = append(second, items) })

	payload := []domain.LineItem{{ProductID: "p1", Quantity: 1}}
	n.Publish("c1", payload)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, payload, first[0])
	assert.Equal(t, payload, second[0])
}

func TestPublish_NoListenersDropsEvent(t *testing.T) {
	n := NewNotifier()
	assert.NotPanics(t, func() {
		n.Publish("c1", []domain.LineItem{{ProductID: "p1", Quantity: 1}})
	})
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	n := NewNotifier()

	calls := 0
	id := n.Subscribe(func(cartID string, items []domain.LineItem) { calls++ })

	n.Publish("c1", nil)
	n.Unsubscribe(id)
	n.Publish("c1", nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, n.Len())
}

func TestUnsubscribe_UnknownTokenIsNoOp(t *testing.T) {
	n := NewNotifier()
	n.Subscribe(func(cartID string, items []domain.LineItem) {})

	n.Unsubscribe(999)
	assert.Equal(t, 1, n.Len())
}

func TestPublish_DeliversInSubscriptionOrder(t *testing.T) {
	n := NewNotifier()

	var order []int
	n.Subscribe(func(string, []domain.LineItem) { order = append(order, 1) })
	n.Subscribe(func(string, []domain.LineItem) { order = append(order, 2) })
	n.Subscribe(func(string, []domain.LineItem) { order = append(order, 3) })

	n.Publish("c1", nil)
	assert.Equal(t, []int{1, 2, 3}, order)
}
