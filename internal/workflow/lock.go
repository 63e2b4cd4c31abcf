package workflow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"filerename/internal/faults"
)

const lockDirName = "locks"

// LockPath returns the lock file guarding target inside stateDir. The name is
// derived from the absolute target path so unrelated trees never contend.
func LockPath(stateDir, target string) string {
	sum := sha256.Sum256([]byte(target))
	return filepath.Join(stateDir, lockDirName, hex.EncodeToString(sum[:8])+".lock")
}

// acquireLock takes the exclusive apply lock for target.
func acquireLock(stateDir, target string) (*flock.Flock, error) {
	path := LockPath(stateDir, target)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, faults.Wrap(nil, "workflow", "lock", "create lock directory", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(nil, "workflow", "lock", "acquire lock", err)
	}
	if !ok {
		return nil, faults.Wrap(faults.ErrLocked, "workflow", "lock",
			fmt.Sprintf("another apply run holds %s", target), nil)
	}
	return lock, nil
}
