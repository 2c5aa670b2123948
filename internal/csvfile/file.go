package csvfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/internal/paths"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Backend stores snapshots in the comma-separated data file format.
type Backend struct{}

// NewBackend returns a csv file backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Load reads the data file at path. An open failure wraps types.ErrIO; a
// read failure wraps types.ErrUnreadable.
func (b *Backend) Load(path string) (crm.Snapshot, []types.Warning, error) {
	return Load(path)
}

// Save writes snap to path atomically.
func (b *Backend) Save(path string, snap crm.Snapshot) error {
	return Save(path, snap)
}

var _ crm.Backend = (*Backend)(nil)

// Load opens path and decodes it. An open failure wraps types.ErrIO so
// the caller can continue with its existing state. A failure while
// reading the opened file wraps types.ErrUnreadable.
func Load(path string) (crm.Snapshot, []types.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return crm.Snapshot{}, nil, fmt.Errorf("%w: opening %s: %v", types.ErrIO, path, err)
	}
	defer f.Close()

	snap, warnings, err := Decode(f)
	if err != nil {
		return crm.Snapshot{}, warnings, fmt.Errorf("%w: reading %s: %v", types.ErrUnreadable, path, err)
	}
	return snap, warnings, nil
}

// Save encodes snap into a temp file next to path, syncs it, and renames
// it over path. The new file keeps the old one's permissions, and a
// symlink at path keeps pointing at the rewritten file. On failure the
// temp file is removed and path is left as it was. Errors wrap
// types.ErrIO.
func Save(path string, snap crm.Snapshot) error {
	target, mode, err := paths.SaveTarget(path)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", types.ErrIO, path, err)
	}
	tmp, err := paths.CreateTemp(target, ".crm-*.tmp", mode)
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %v", types.ErrIO, target, err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, snap); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", types.ErrIO, err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: flushing buffer: %v", types.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: syncing temp file: %v", types.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", types.ErrIO, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming temp file: %v", types.ErrIO, err)
	}
	return nil
}
