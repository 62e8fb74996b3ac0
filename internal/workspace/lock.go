// Package workspace guards an output directory so only one authoring run at a
// time writes menu_image.png, the encoded streams and the disc image into it.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"bdmenu/internal/services"
)

// LockName is the lock file created inside the guarded directory.
const LockName = ".bdmenu.lock"

// Lock is a held directory lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes a non-blocking lock on dir. A lock held by another process
// yields ErrValidation.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, LockName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "workspace", "lock", fmt.Sprintf("lock %s", path), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "workspace", "lock", "another authoring run is using this directory", nil)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks the directory.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
