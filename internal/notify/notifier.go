package notify

import (
	"sync"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// Listener receives the normalized line-item sequence after every
// successful cart mutation. Prices are never part of the payload;
// listeners that need them re-fetch the catalog themselves.
type Listener func(cartID string, items []domain.LineItem)

// Notifier is an explicit observer registry. Dispatch is synchronous and
// in subscription order; with no subscribers the event is dropped.
type Notifier struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns a token for Unsubscribe.
func (n *Notifier) Subscribe(l Listener) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.listeners[id] = l
	n.order = append(n.order, id)
	return id
}

func (n *Notifier) Unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[id]; !ok {
		return
	}
	delete(n.listeners, id)
	for i, v := range n.order {
		if v == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Publish fans the change out to every subscriber. Listeners run on the
// caller's goroutine; a mutation is not "done" until they have seen it.
func (n *Notifier) Publish(cartID string, items []domain.LineItem) {
	n.mu.RLock()
	ls := make([]Listener, 0, len(n.order))
	for _, id := range n.order {
		ls = append(ls, n.listeners[id])
	}
	n.mu.RUnlock()

	for _, l := range ls {
		l(cartID, items)
	}
}

func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
