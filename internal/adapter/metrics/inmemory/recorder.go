package inmemory

import (
	"sync"
	"time"
)

type Snapshot struct {
	TickTotal        uint64            `json:"tick_total"`
	TickAvgMillis    float64           `json:"tick_avg_ms"`
	TickLastMillis   float64           `json:"tick_last_ms"`
	MovesByResult    map[string]uint64 `json:"moves_by_result"`
	Pickups          uint64            `json:"pickups"`
	Evictions        uint64            `json:"evictions"`
	CommandsTotal    uint64            `json:"commands_total"`
	CommandsAccepted uint64            `json:"commands_accepted"`
	CommandsRejected uint64            `json:"commands_rejected"`
	TickFailures     uint64            `json:"tick_failures"`
}

// Recorder keeps simulation counters in memory for the ops endpoint.
type Recorder struct {
	mu        sync.Mutex
	ticks     uint64
	tickTime  time.Duration
	lastTick  time.Duration
	moves     map[string]uint64
	pickups   uint64
	evictions uint64
	accepted  uint64
	rejected  uint64
	failures  uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		moves: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.tickTime += elapsed
	r.lastTick = elapsed
}

func (r *Recorder) RecordMove(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves[result]++
}

func (r *Recorder) RecordPickup(evicted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pickups++
	if evicted {
		r.evictions++
	}
}

func (r *Recorder) RecordCommand(accepted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if accepted {
		r.accepted++
		return
	}
	r.rejected++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickTotal:        r.ticks,
		TickLastMillis:   millis(r.lastTick),
		MovesByResult:    make(map[string]uint64, len(r.moves)),
		Pickups:          r.pickups,
		Evictions:        r.evictions,
		CommandsTotal:    r.accepted + r.rejected,
		CommandsAccepted: r.accepted,
		CommandsRejected: r.rejected,
		TickFailures:     r.failures,
	}
	if r.ticks > 0 {
		out.TickAvgMillis = millis(r.tickTime) / float64(r.ticks)
	}
	for k, v := range r.moves {
		out.MovesByResult[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
