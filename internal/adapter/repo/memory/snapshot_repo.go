package memory

import (
	"context"

	"islandsim/internal/app/ports"
)

// SnapshotRepo keeps the most recent snapshots in memory.
type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Save(_ context.Context, snap ports.Snapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.snapshots = append(r.store.snapshots, snap)
	if over := len(r.store.snapshots) - r.store.keep; over > 0 {
		r.store.snapshots = append([]ports.Snapshot(nil), r.store.snapshots[over:]...)
	}
	return nil
}

func (r SnapshotRepo) Latest(_ context.Context) (ports.Snapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if len(r.store.snapshots) == 0 {
		return ports.Snapshot{}, ports.ErrNotFound
	}
	return r.store.snapshots[len(r.store.snapshots)-1], nil
}

func (r SnapshotRepo) List(_ context.Context) []ports.Snapshot {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]ports.Snapshot, len(r.store.snapshots))
	copy(out, r.store.snapshots)
	return out
}
