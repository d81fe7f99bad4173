package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"
)

// TableHandle memoizes LoadTable for one path. The cached table is reused
// until the file's modification time or size changes, or Reload is called.
// Returned tables are shared and must not be mutated.
type TableHandle struct {
	path string

	mu      sync.Mutex
	table   *Table
	modTime time.Time
	size    int64
}

// NewTableHandle creates a handle; nothing is read until Get
func NewTableHandle(path string) *TableHandle {
	return &TableHandle{path: path}
}

// Path returns the backing file path
func (h *TableHandle) Path() string {
	return h.path
}

// Get returns the cached table, loading it on first use or when the file changed
func (h *TableHandle) Get() (*Table, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, err := os.Stat(h.path)
	if err != nil {
		h.table = nil
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, h.path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", h.path, err)
	}

	if h.table != nil && info.ModTime().Equal(h.modTime) && info.Size() == h.size {
		return h.table, nil
	}

	table, err := LoadTable(h.path)
	if err != nil {
		return nil, err
	}
	h.table, h.modTime, h.size = table, info.ModTime(), info.Size()
	log.Printf("Cached %s (%d rows)", h.path, table.Len())
	return table, nil
}

// Reload drops the cached table and loads the file again
func (h *TableHandle) Reload() (*Table, error) {
	h.mu.Lock()
	h.table = nil
	h.mu.Unlock()
	return h.Get()
}
