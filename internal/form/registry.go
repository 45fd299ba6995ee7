package form

import (
	"context"
	"sync"
	"time"

	"github.com/drakos74/free-iris/client"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Registry keeps one form per session.
type Registry struct {
	service client.Service
	forms   map[string]*Controller
	lock    *sync.Mutex
}

// NewRegistry creates a new registry of forms talking to the given service.
func NewRegistry(service client.Service) *Registry {
	return &Registry{
		service: service,
		forms:   make(map[string]*Controller),
		lock:    new(sync.Mutex),
	}
}

// NewSessionID generates a new session key.
func NewSessionID() string {
	return uuid.New().String()
}

// Get returns the form of the session, creating it if needed.
// A new form checks the health of the service once, as on the initial page load.
func (r *Registry) Get(ctx context.Context, id string) *Controller {
	r.lock.Lock()
	c, ok := r.forms[id]
	if !ok {
		c = NewController(id, r.service)
		r.forms[id] = c
	}
	r.lock.Unlock()
	if !ok {
		log.Info().Str("form", id).Msg("created form")
		c.CheckHealth(ctx)
	}
	return c
}

// Remove closes and forgets the form of the session.
func (r *Registry) Remove(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if c, ok := r.forms[id]; ok {
		c.Close()
		delete(r.forms, id)
	}
}

// Size returns the number of live forms.
func (r *Registry) Size() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.forms)
}

// Sweep closes the forms that have been idle for longer than maxIdle.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	now := time.Now()
	var count int
	for id, c := range r.forms {
		if c.idle(now) > maxIdle {
			c.Close()
			delete(r.forms, id)
			count++
		}
	}
	if count > 0 {
		log.Info().Int("count", count).Int("live", len(r.forms)).Msg("swept idle forms")
	}
	return count
}

// Close closes all forms.
func (r *Registry) Close() {
	r.lock.Lock()
	defer r.lock.Unlock()
	for id, c := range r.forms {
		c.Close()
		delete(r.forms, id)
	}
}
