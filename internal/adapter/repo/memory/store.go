package memory

import (
	"fmt"
	"sync"

	"islandsim/internal/app/ports"
	"islandsim/internal/domain/terrain"
)

const defaultSnapshotKeep = 16

type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	chunks    map[string]terrain.Chunk
	snapshots []ports.Snapshot
	keep      int
}

func NewStore() *Store {
	return &Store{
		chunks: make(map[string]terrain.Chunk),
		keep:   defaultSnapshotKeep,
	}
}

func chunkKey(key ports.WorldKey, coord terrain.ChunkCoord) string {
	return fmt.Sprintf("%d::%d::%s::%d,%d", key.Seed, key.Size, key.Noise, coord.X, coord.Y)
}

func (s *Store) ChunkCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
