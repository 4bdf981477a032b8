package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-showroom-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesIdleSession(t *testing.T) {
	s := NewSessionStore(time.Minute)

	sess := s.Get("acme:telegram:42")
	require.NotNil(t, sess)
	assert.Equal(t, store.StateIdle, sess.State)
	assert.Empty(t, sess.Slots)
	assert.Nil(t, sess.Menu)
}

func TestMergeSlotsOverwrites(t *testing.T) {
	s := NewSessionStore(time.Minute)
	id := "acme:telegram:42"

	s.MergeSlots(id, map[string]interface{}{"brand": "Audi", "page": 1})
	s.MergeSlots(id, map[string]interface{}{"brand": "BMW"})

	sess := s.Get(id)
	assert.Equal(t, "BMW", sess.StringSlot("brand"))
	assert.Equal(t, 1, sess.IntSlot("page"))
}

func TestExpiredSessionBehavesLikeNew(t *testing.T) {
	s := NewSessionStore(40 * time.Millisecond)
	id := "acme:telegram:42"

	s.SetState(id, store.StateAwaitingModel)
	s.MergeSlots(id, map[string]interface{}{"brand": "Audi"})

	time.Sleep(80 * time.Millisecond)

	sess := s.Get(id)
	assert.Equal(t, store.StateIdle, sess.State, "expired session must come back Idle")
	assert.Empty(t, sess.Slots, "no leaked slots after expiry")
}

func TestMutationRefreshesExpiry(t *testing.T) {
	s := NewSessionStore(60 * time.Millisecond)
	id := "acme:telegram:42"

	s.SetState(id, store.StateMainMenu)
	time.Sleep(40 * time.Millisecond)
	s.MergeSlots(id, map[string]interface{}{"category": "SUV"})
	time.Sleep(40 * time.Millisecond)

	// 80ms since creation but only 40ms since the last mutation.
	sess := s.Get(id)
	assert.Equal(t, store.StateMainMenu, sess.State)
	assert.Equal(t, "SUV", sess.StringSlot("category"))
}

func TestSweepExpiredCounts(t *testing.T) {
	s := NewSessionStore(30 * time.Millisecond)

	s.SetState("a:telegram:1", store.StateMainMenu)
	s.SetState("a:telegram:2", store.StateMainMenu)
	time.Sleep(50 * time.Millisecond)
	s.SetState("a:telegram:3", store.StateMainMenu)

	swept := s.SweepExpired()
	assert.Equal(t, 2, swept)
	assert.Equal(t, 1, s.ActiveCount())
}

func TestClear(t *testing.T) {
	s := NewSessionStore(time.Minute)
	id := "acme:telegram:42"

	s.SetState(id, store.StateConfirmingOrder)
	s.Clear(id)

	assert.Equal(t, store.StateIdle, s.Get(id).State)
}

func TestLockSurvivesSweep(t *testing.T) {
	s := NewSessionStore(20 * time.Millisecond)
	id := "acme:telegram:42"

	unlock := s.Lock(id)
	s.SetState(id, store.StateMainMenu)
	time.Sleep(40 * time.Millisecond)
	s.SweepExpired()
	unlock()

	// Sweeping the session must not invalidate its lock.
	done := make(chan struct{})
	go func() {
		u := s.Lock(id)
		u()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock unusable after sweep")
	}
}

func TestLockChurnManyKeys(t *testing.T) {
	s := NewSessionStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("tenant-%d:telegram:%d", i%7, i)
			unlock := s.Lock(id)
			defer unlock()
			s.SetState(id, store.StateMainMenu)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 500, s.ActiveCount())
}

func TestPerKeyLockSerializes(t *testing.T) {
	s := NewSessionStore(time.Minute)
	id := "acme:telegram:42"

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock(id)
			defer unlock()
			sess := s.Get(id)
			n := sess.IntSlot("count")
			s.MergeSlots(id, map[string]interface{}{"count": n + 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, s.Get(id).IntSlot("count"))
}
