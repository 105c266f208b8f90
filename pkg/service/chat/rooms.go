package chat

import (
	"context"
	"sync"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrRoomsClosed is returned when a room is requested after shutdown
var ErrRoomsClosed = goerr.New("rooms manager is closed")

// Rooms lazily creates one Session per case and disposes them all on
// shutdown.
type Rooms struct {
	mu        sync.Mutex
	sessions  map[types.CaseID]*Session
	assistant interfaces.Assistant
	opts      []SessionOption
	closed    bool
}

func NewRooms(ai interfaces.Assistant, opts ...SessionOption) *Rooms {
	return &Rooms{
		sessions:  make(map[types.CaseID]*Session),
		assistant: ai,
		opts:      opts,
	}
}

// Get returns the room for the case, creating and starting it on first
// access.
func (r *Rooms) Get(ctx context.Context, c *model.Case) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, goerr.Wrap(ErrRoomsClosed, "cannot open room", goerr.V("case_id", c.ID))
	}

	if s, exists := r.sessions[c.ID]; exists {
		return s, nil
	}

	s := NewSession(c, r.assistant, r.opts...)
	r.sessions[c.ID] = s
	s.Start(ctx)
	return s, nil
}

// Close disposes every open room
func (r *Rooms) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for _, s := range r.sessions {
		s.Close()
	}
}
