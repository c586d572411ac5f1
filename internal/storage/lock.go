package storage

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrLocked is returned when the store lock could not be acquired in time.
var ErrLocked = errors.New("custom reminder store is locked by another writer")

const (
	lockWait  = 5 * time.Second
	lockPoll  = 20 * time.Millisecond
	lockStale = 30 * time.Second
)

// acquireLock creates path exclusively, retrying until wait elapses. A lock
// file older than lockStale is considered abandoned and removed.
func acquireLock(path string, wait time.Duration) (func(), error) {
	deadline := time.Now().Add(wait)
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("storage error creating lock %s: %w", path, err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > lockStale {
			_ = os.Remove(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
		}
		time.Sleep(lockPoll)
	}
}
