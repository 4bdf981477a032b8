package memory

import (
	"hash/fnv"
	"sync"
	"time"

	"ai-showroom-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const lockStripes = 64

// SessionStore is the single keyed store mutated by every request.
// Expiry is delegated to go-cache: a session untouched for longer than the
// TTL behaves exactly like a missing one, so Get transparently recreates it
// in the Idle state. Every mutating call re-sets the entry, which refreshes
// both UpdatedAt and the cache expiry.
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration

	locks [lockStripes]sync.Mutex

	now func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	janitor := ttl / 3
	if janitor < time.Second {
		janitor = time.Second
	}
	return &SessionStore{
		cache: cache.New(ttl, janitor),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Lock serializes access per session key and returns the unlock func.
// Two concurrent messages from the same user must not interleave; requests
// for different users proceed in parallel. Keys hash onto a fixed set of
// stripes, so the lock table stays the same size no matter how many
// sessions come and go.
func (s *SessionStore) Lock(id string) func() {
	l := &s.locks[stripeFor(id)]
	l.Lock()
	return l.Unlock
}

func stripeFor(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % lockStripes)
}

// Get returns the session for id, creating a fresh Idle session if none
// exists or the previous one expired. Callers never see a miss.
func (s *SessionStore) Get(id string) *store.Session {
	if x, found := s.cache.Get(id); found {
		return x.(*store.Session)
	}
	sess := store.NewSession(id)
	sess.UpdatedAt = s.now()
	s.cache.Set(id, sess, cache.DefaultExpiration)
	return sess
}

func (s *SessionStore) SetState(id, state string) {
	sess := s.Get(id)
	sess.State = state
	s.touch(sess)
}

// MergeSlots shallow-merges patch into the session slots; patch keys
// overwrite existing ones.
func (s *SessionStore) MergeSlots(id string, patch map[string]interface{}) {
	sess := s.Get(id)
	for k, v := range patch {
		sess.Slots[k] = v
	}
	s.touch(sess)
}

func (s *SessionStore) DeleteSlot(id, key string) {
	sess := s.Get(id)
	delete(sess.Slots, key)
	s.touch(sess)
}

// SetMenu replaces the current menu mapping. Menus are rebuilt on every
// render; the stored copy is what the classifier tests digit input against
// on the next turn.
func (s *SessionStore) SetMenu(id string, menu map[string]store.MenuAction) {
	sess := s.Get(id)
	sess.Menu = menu
	s.touch(sess)
}

func (s *SessionStore) Clear(id string) {
	s.cache.Delete(id)
}

// SweepExpired purges expired sessions and returns how many were removed.
func (s *SessionStore) SweepExpired() int {
	before := s.cache.ItemCount()
	s.cache.DeleteExpired()
	return before - s.cache.ItemCount()
}

// ActiveCount reports non-expired sessions, for the admin stats endpoint.
func (s *SessionStore) ActiveCount() int {
	s.cache.DeleteExpired()
	return s.cache.ItemCount()
}

func (s *SessionStore) touch(sess *store.Session) {
	sess.UpdatedAt = s.now()
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
}
