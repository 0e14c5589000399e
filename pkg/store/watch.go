package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// settleDelay collects a burst of writes, such as another board process
// saving notices and users back to back, into one round of events.
const settleDelay = 100 * time.Millisecond

// Event is emitted by Watch when a key changes outside this process. An
// empty Key means "something changed, reload everything".
type Event struct {
	Key string
}

// Watch reports writes to the board's keys until ctx is cancelled. Files in
// the data directory that are not board keys are ignored. The channel is
// closed when ctx is done or the watcher fails. Watcher trouble is logged
// to log.
func (p *Diskv) Watch(ctx context.Context, log zerolog.Logger) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := w.Add(p.basePath); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	out := make(chan Event, len(boardKeys)+1)
	go p.watchLoop(ctx, w, out, log)
	return out, nil
}

func (p *Diskv) watchLoop(ctx context.Context, w *fsnotify.Watcher, out chan<- Event, log zerolog.Logger) {
	defer close(out)
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn().Err(err).Msg("store: watcher close")
		}
	}()

	pending := map[string]bool{}
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	mark := func(key string) {
		if len(pending) == 0 {
			settle.Reset(settleDelay)
		}
		pending[key] = true
	}

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Msg("store: watcher error")
			mark("")
		case evt, ok := <-w.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if key := p.keyForPath(evt.Name); boardKeys[key] {
				mark(key)
			}
		case <-settle.C:
			for key := range pending {
				log.Debug().Str("key", key).Msg("store: external change")
				select {
				case out <- Event{Key: key}:
				default:
					// Consumer is behind; its pending reload reads every key.
				}
			}
			pending = map[string]bool{}
		}
	}
}

var boardKeys = map[string]bool{
	KeyNotices:     true,
	KeyEvents:      true,
	KeyUsers:       true,
	KeyCurrentUser: true,
}
