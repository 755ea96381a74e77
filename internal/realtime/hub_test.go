package realtime

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	frames []Envelope
	err    error
}

func (f *fakeSession) WriteJSON(v interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, v.(Envelope))
	return nil
}

func TestSendToUnknownUser(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.Send(uuid.New(), "crisis-alert", "x"))
}

func TestSendDeliversToAllSessions(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	a, b := &fakeSession{}, &fakeSession{}
	hub.register(userID, a)
	hub.register(userID, b)

	ok := hub.Send(userID, "crisis-alert", map[string]string{"id": "1"})
	assert.True(t, ok)
	require.Len(t, a.frames, 1)
	require.Len(t, b.frames, 1)
	assert.Equal(t, "crisis-alert", a.frames[0].Event)
}

func TestSendEvictsDeadSessions(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	dead := &fakeSession{err: errors.New("broken pipe")}
	live := &fakeSession{}
	hub.register(userID, dead)
	hub.register(userID, live)

	assert.True(t, hub.Send(userID, "ping", nil))
	// The dead session is gone; only the live one remains registered.
	assert.True(t, hub.Send(userID, "ping", nil))
	assert.Len(t, live.frames, 2)
	assert.Equal(t, 1, hub.ConnectedUsers())
}

// slowSession records whether two WriteJSON calls ever overlap. The real
// websocket connection tolerates only one writer at a time.
type slowSession struct {
	inflight int32
	overlaps int32
	frames   int32
}

func (s *slowSession) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&s.inflight, 1) > 1 {
		atomic.AddInt32(&s.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&s.inflight, -1)
	atomic.AddInt32(&s.frames, 1)
	return nil
}

func TestSendSerializesWritesPerSession(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	s := &slowSession{}
	hub.register(userID, s)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Send(userID, "crisis-alert", map[string]string{"id": "1"})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&s.overlaps))
	assert.Equal(t, int32(8), atomic.LoadInt32(&s.frames))
}

func TestUnregisterLastSessionRemovesUser(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	s := &fakeSession{}
	hub.register(userID, s)
	require.Equal(t, 1, hub.ConnectedUsers())

	hub.unregister(userID, s)
	assert.Equal(t, 0, hub.ConnectedUsers())
	assert.False(t, hub.Send(userID, "ping", nil))
}
