package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginLocksSerializePerLogin(t *testing.T) {
	t.Parallel()

	var locks loginLocks
	var counter int

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("alice")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, 100, counter)

	// All entries released, the map must be empty again.
	locks.mu.Lock()
	defer locks.mu.Unlock()
	require.Empty(t, locks.held)
}

func TestLoginLocksIndependentAcrossLogins(t *testing.T) {
	t.Parallel()

	var locks loginLocks

	unlockAlice := locks.lock("alice")
	done := make(chan struct{})
	go func() {
		// Must not block on alice's lock.
		unlockBob := locks.lock("bob")
		unlockBob()
		close(done)
	}()
	<-done
	unlockAlice()
}
