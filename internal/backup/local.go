package backup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/rogerio-castellano/expiry-tracker/internal/expiry"
)

// LocalStore writes backup snapshots to a directory. Files are written
// atomically so a crash mid-write never leaves a truncated backup.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Write persists the backup and returns the file path. The name embeds the
// export date and snapshot id.
func (s *LocalStore) Write(b Backup) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := Marshal(b)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("expiry-tracker-backup-%s-%s.json", dateStamp(b), b.SnapshotID)
	path := filepath.Join(s.dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

func dateStamp(b Backup) string {
	if len(b.ExportedAt) >= len(expiry.DateLayout) {
		return b.ExportedAt[:len(expiry.DateLayout)]
	}
	return "undated"
}
