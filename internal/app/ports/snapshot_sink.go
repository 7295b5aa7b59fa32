package ports

import (
	"context"
	"time"

	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/terrain"
)

type Snapshot struct {
	Tick    uint64               `json:"tick"`
	TakenAt time.Time            `json:"taken_at"`
	Census  map[terrain.Kind]int `json:"census"`
	Items   int                  `json:"items"`
	Agents  []agent.View         `json:"agents"`
}

// SnapshotSink receives world snapshots off the tick path.
type SnapshotSink interface {
	Save(ctx context.Context, snap Snapshot) error
}

type SnapshotReader interface {
	Latest(ctx context.Context) (Snapshot, error)
}
