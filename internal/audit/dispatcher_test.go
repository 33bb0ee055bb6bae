package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	id := uuid.New()
	d.Dispatch(Event{Action: "order_created", Entity: "order", EntityID: &id})
	d.Dispatch(Event{Action: "order_deleted", Entity: "order", EntityID: &id})
	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, "order_created", sink.events[0].Action)
	assert.Equal(t, "order_deleted", sink.events[1].Action)
}

func TestDispatcher_SinkErrorsDoNotStopWorker(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	assert.Len(t, sink.events, 2)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
	d.Close()
}
