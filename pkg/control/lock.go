package control

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/alttab/pkg/domain"
	"golang.org/x/sys/unix"
)

// pathLock is an exclusive advisory lock guarding a socket path.
type pathLock struct {
	file *os.File
}

func lockPath(socketPath string) string {
	return socketPath + ".lock"
}

// acquirePathLock locks the sibling lock file of socketPath without blocking.
func acquirePathLock(socketPath string) (*pathLock, error) {
	path := lockPath(socketPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyRunning, socketPath)
	}
	return &pathLock{file: f}, nil
}

func (l *pathLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}
