// Package backup writes rotated JSON snapshots of a user's document next to
// the config directory and restores them through the document store.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/harmony/internal/cloud"
	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/logger"
)

const (
	minuteStamp = "20060102-1504"
	secondStamp = "20060102-150405"
)

// Snapshot is the on-disk backup format.
type Snapshot struct {
	UserID    string         `json:"userId"`
	CreatedAt time.Time      `json:"createdAt"`
	Document  cloud.Document `json:"document"`
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	backupDir string
	now       func() time.Time
}

func NewManager(configDir string) *Manager {
	return &Manager{
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the user's current document and rotates old backups.
func (m *Manager) Create(ctx context.Context, store cloud.DocumentStore, userID string) (string, error) {
	return m.create(ctx, store, userID, false)
}

func (m *Manager) create(ctx context.Context, store cloud.DocumentStore, userID string, skipRotation bool) (string, error) {
	doc, err := store.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	if doc == nil {
		return "", fmt.Errorf("nothing to back up for %s", userID)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	snap := Snapshot{UserID: userID, CreatedAt: m.now().UTC(), Document: doc}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

// nextPath picks a unique file name: minute precision first, then seconds,
// then a numeric suffix.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format(minuteStamp))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format(secondStamp)
	path = name(stamp)
	for i := 1; exists(path); i++ {
		if i > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, i))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// List returns backups newest first.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		ts, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix))
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Path: filepath.Join(m.backupDir, name), Timestamp: ts, Size: info.Size()})
	}

	slices.SortStableFunc(backups, func(a, b BackupInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

// parseStamp accepts YYYYMMDD-HHMM, YYYYMMDD-HHMMSS and either with a -N
// counter.
func parseStamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 {
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{minuteStamp, secondStamp} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Read loads and checks a snapshot file.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if snap.UserID == "" || snap.Document == nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: missing user or document")
	}
	if _, err := cloud.DecodeState(snap.Document); err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	return snap, nil
}

// Restore writes the snapshot at path back to the store for userID. The
// current document is backed up first, without rotation, and its path is
// returned ("" when there was nothing to save).
func (m *Manager) Restore(ctx context.Context, store cloud.DocumentStore, userID, path string) (string, error) {
	snap, err := Read(path)
	if err != nil {
		return "", err
	}

	var previous string
	if doc, err := store.Get(ctx, userID); err == nil && doc != nil {
		previous, err = m.create(ctx, store, userID, true)
		if err != nil {
			return "", fmt.Errorf("failed to back up current document before restore: %w", err)
		}
	}

	// every persisted field is present in a snapshot, so the merge is a full replace
	full, err := normalize(snap.Document)
	if err != nil {
		return previous, err
	}
	if err := store.MergeSet(ctx, userID, full); err != nil {
		return previous, fmt.Errorf("failed to restore document: %w", err)
	}
	return previous, nil
}

func normalize(doc cloud.Document) (cloud.Document, error) {
	st, err := cloud.DecodeState(doc)
	if err != nil {
		return nil, err
	}
	return cloud.EncodeState(st)
}
