package service

import (
	"sync"
)

// ProgramLocks serializes goal propagation per program id within this process.
// Entries are reference counted and dropped once no caller holds or waits on them.
type ProgramLocks struct {
	mu    sync.Mutex
	locks map[int64]*programLock
}

type programLock struct {
	mu   sync.Mutex
	refs int
}

func NewProgramLocks() *ProgramLocks {
	return &ProgramLocks{
		locks: make(map[int64]*programLock),
	}
}

// Lock blocks until the program's lock is held and returns its release func.
func (l *ProgramLocks) Lock(programID int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[programID]
	if !ok {
		lock = &programLock{}
		l.locks[programID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, programID)
		}
		l.mu.Unlock()
	}
}

// size reports the number of tracked programs.
func (l *ProgramLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
