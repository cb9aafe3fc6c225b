// internal/store/notifier.go
package store

import "sync"

// notifier fans change events out to per-table subscriber channels. Sends
// never block: a full channel drops the event, which is safe because every
// event carries the same meaning (reload).
type notifier struct {
	mu   sync.Mutex
	subs map[string][]chan ChangeEvent
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string][]chan ChangeEvent)}
}

func (n *notifier) subscribe(table string) <-chan ChangeEvent {
	ch := make(chan ChangeEvent, 16)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs[table] = append(n.subs[table], ch)
	return ch
}

func (n *notifier) publish(ev ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[ev.Table] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (n *notifier) closeAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, chans := range n.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	n.subs = make(map[string][]chan ChangeEvent)
}
