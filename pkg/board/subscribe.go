package board

// Subscribe returns a channel that receives a Change after every successful
// mutation. Sends never block: a subscriber that falls behind sees one
// pending Change standing in for the burst.
func (b *Board) Subscribe() <-chan Change {
	ch := make(chan Change, 1)
	b.subMu.Lock()
	b.subs[ch] = struct{}{}
	b.subMu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (b *Board) Unsubscribe(ch <-chan Change) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	for c := range b.subs {
		if c == ch {
			delete(b.subs, c)
			close(c)
			return
		}
	}
}

func (b *Board) broadcast(c Change) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
