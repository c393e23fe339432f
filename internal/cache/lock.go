package cache

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
)

// ErrWouldBlock is returned by tryLockExclusive when another process already
// holds the lock.
var ErrWouldBlock = errors.New("cache: lock would block")

// fileLock wraps an exclusive flock(2) held on a cache entry's own file
// descriptor, following the pattern of
// _examples/calvinalkan-agent-task/internal/fs/lock.go: flock locks the
// inode behind an open fd, not the pathname, and Close is idempotent.
type fileLock struct {
	mu   sync.Mutex
	file *os.File
}

// lockExclusive blocks until an exclusive lock on f is acquired.
func lockExclusive(f *os.File) (*fileLock, error) {
	if err := flockRetryEINTR(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return nil, fmt.Errorf("cache: locking entry file: %w", err)
	}
	return &fileLock{file: f}, nil
}

// tryLockExclusive acquires the lock without blocking, returning
// ErrWouldBlock if another process holds it.
func tryLockExclusive(f *os.File) (*fileLock, error) {
	err := flockRetryEINTR(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, ErrWouldBlock
		}
		return nil, fmt.Errorf("cache: locking entry file: %w", err)
	}
	return &fileLock{file: f}, nil
}

// Close releases the lock. Idempotent.
func (lk *fileLock) Close() error {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	if lk.file == nil {
		return nil
	}
	err := flockRetryEINTR(int(lk.file.Fd()), syscall.LOCK_UN)
	lk.file = nil
	if err != nil {
		return fmt.Errorf("cache: unlocking entry file: %w", err)
	}
	return nil
}

func flockRetryEINTR(fd int, how int) error {
	for {
		err := syscall.Flock(fd, how)
		if err != syscall.EINTR {
			return err
		}
	}
}
