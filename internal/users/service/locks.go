package service

import "sync"

// loginLocks serializes check-then-set sequences on the connection flag
// per login. One logical lock per identity: concurrent operations on
// distinct users never contend.
type loginLocks struct {
	mu   sync.Mutex
	held map[string]*loginLock
}

type loginLock struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the lock for login and returns the release func.
// Entries are reference counted so the map does not grow with the
// number of logins ever seen.
func (l *loginLocks) lock(login string) func() {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*loginLock)
	}
	entry, ok := l.held[login]
	if !ok {
		entry = &loginLock{}
		l.held[login] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.held, login)
		}
		l.mu.Unlock()
	}
}
