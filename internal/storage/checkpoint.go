package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/expense-track/internal/service"
)

// CheckpointManager snapshots and restores the four durable slots.
type CheckpointManager struct {
	storage        service.SlotStorage
	checkpointsDir string
	now            func() time.Time
}

// Checkpoint is the on-disk form of a snapshot.
type Checkpoint struct {
	Slots map[service.Slot]json.RawMessage `json:"slots"`
	CheckpointMetadata
}

// CheckpointMetadata contains metadata about a checkpoint.
type CheckpointMetadata struct {
	CreatedAt     time.Time            `json:"created_at"`
	Counts        map[service.Slot]int `json:"counts"`
	Revisions     map[service.Slot]int `json:"revisions,omitempty"`
	ID            string               `json:"id"`
	Description   string               `json:"description"`
	SchemaVersion int                  `json:"schema_version"`
	IsAuto        bool                 `json:"is_auto"`
}

// Common errors.
var (
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrCheckpointExists   = errors.New("checkpoint already exists")
	ErrInvalidTag         = errors.New("invalid checkpoint tag: cannot contain path separators")
)

// revisionReader is implemented by storages that count writes per slot.
type revisionReader interface {
	Revision(ctx context.Context, slot service.Slot) (int, error)
}

// maxAutoCheckpoints is how many automatic checkpoints survive cleanup.
const maxAutoCheckpoints = 5

// NewCheckpointManager creates a checkpoint manager writing into dir.
func NewCheckpointManager(storage service.SlotStorage, dir string) (*CheckpointManager, error) {
	if storage == nil {
		return nil, fmt.Errorf("%w: storage", ErrNilParameter)
	}
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	return &CheckpointManager{
		storage:        storage,
		checkpointsDir: dir,
		now:            time.Now,
	}, nil
}

// CheckpointsDir returns the conventional checkpoints directory for a database file.
func CheckpointsDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "checkpoints")
}

// Create snapshots every slot under tag. An empty tag gets a timestamped name.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointMetadata, error) {
	return cm.create(ctx, tag, description, false)
}

// AutoCheckpoint creates an automatic checkpoint and prunes old automatic ones.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, prefix string) (*CheckpointMetadata, error) {
	tag := fmt.Sprintf("auto-%s-%s", prefix, cm.now().Format("2006-01-02-150405"))
	meta, err := cm.create(ctx, tag, "Automatic checkpoint before "+prefix, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		slog.Warn("failed to clean up old auto-checkpoints", "error", err)
	}
	return meta, nil
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, auto bool) (*CheckpointMetadata, error) {
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", cm.now().Format("2006-01-02-1504"))
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	path := cm.pathFor(tag)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointExists, tag)
	}

	cp := Checkpoint{
		Slots: make(map[service.Slot]json.RawMessage, len(service.AllSlots)),
		CheckpointMetadata: CheckpointMetadata{
			ID:            tag,
			CreatedAt:     cm.now(),
			Description:   description,
			Counts:        make(map[service.Slot]int, len(service.AllSlots)),
			SchemaVersion: ExpectedSchemaVersion,
			IsAuto:        auto,
		},
	}

	for _, slot := range service.AllSlots {
		payload, found, err := cm.storage.Load(ctx, slot)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		cp.Slots[slot] = json.RawMessage(payload)
		cp.Counts[slot] = countElements(payload)
	}

	if rr, ok := cm.storage.(revisionReader); ok {
		cp.Revisions = make(map[service.Slot]int, len(cp.Slots))
		for slot := range cp.Slots {
			rev, err := rr.Revision(ctx, slot)
			if err != nil {
				return nil, err
			}
			cp.Revisions[slot] = rev
		}
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write checkpoint: %w", err)
	}

	slog.Info("created checkpoint", "id", tag, "auto", auto)
	return &cp.CheckpointMetadata, nil
}

// List returns every checkpoint, newest first.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointMetadata, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	var checkpoints []CheckpointMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		cp, err := cm.load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			slog.Warn("skipping unreadable checkpoint", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, cp.CheckpointMetadata)
	}

	sort.SliceStable(checkpoints, func(i, j int) bool {
		return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
	})
	return checkpoints, nil
}

// Restore rewrites every slot from the checkpoint in one atomic write.
// Slots absent from the checkpoint are written as empty collections rather
// than left absent, so a restore never reseeds defaults.
func (cm *CheckpointManager) Restore(ctx context.Context, id string) error {
	cp, err := cm.load(id)
	if err != nil {
		return err
	}

	payloads := make(map[service.Slot][]byte, len(service.AllSlots))
	for _, slot := range service.AllSlots {
		if raw, ok := cp.Slots[slot]; ok {
			payloads[slot] = []byte(raw)
		} else {
			payloads[slot] = []byte("[]")
		}
	}

	if err := cm.storage.SaveAll(ctx, payloads); err != nil {
		return fmt.Errorf("failed to restore checkpoint %s: %w", id, err)
	}
	slog.Info("restored checkpoint", "id", id)
	return nil
}

// Delete removes a checkpoint.
func (cm *CheckpointManager) Delete(_ context.Context, id string) error {
	if err := validateTag(id); err != nil {
		return err
	}
	if err := os.Remove(cm.pathFor(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	return nil
}

func (cm *CheckpointManager) load(id string) (*Checkpoint, error) {
	if err := validateTag(id); err != nil {
		return nil, err
	}

	// #nosec G304 - id is validated to contain no path separators
	data, err := os.ReadFile(cm.pathFor(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint %s: %w", id, err)
	}
	return &cp, nil
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				slog.Debug("failed to delete old auto-checkpoint during cleanup", "error", err, "checkpoint", cp.ID)
			}
		}
	}
	return nil
}

func (cm *CheckpointManager) pathFor(id string) string {
	return filepath.Join(cm.checkpointsDir, id+".json")
}

func validateTag(tag string) error {
	if tag == "" || strings.ContainsAny(tag, `/\`) || strings.Contains(tag, "..") {
		return ErrInvalidTag
	}
	return nil
}

// countElements returns the length of a JSON array payload, 0 if it is not one.
func countElements(payload []byte) int {
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return 0
	}
	return len(items)
}
