// Package runlock guards against two digest instances running against
// the same store. The lock is a plain flock on a well-known file, so a
// crashed process releases it automatically.
package runlock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Acquire attempts to take the instance lock without blocking. When the
// lock is held elsewhere it returns acquired=false and a nil release;
// callers are expected to skip the run silently.
func Acquire(path string) (release func() error, acquired bool, err error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquiring instance lock %s: %w", path, err)
	}
	if !ok {
		return nil, false, nil
	}
	return fl.Unlock, true, nil
}
