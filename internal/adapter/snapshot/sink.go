package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"islandsim/internal/app/ports"
	"islandsim/internal/domain/terrain"

	"github.com/sirupsen/logrus"
)

// LogSink writes each snapshot as one census line plus one line per
// character.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) Save(_ context.Context, snap ports.Snapshot) error {
	log := s.Log
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "snapshot")
	}
	fields := logrus.Fields{
		"tick":       snap.Tick,
		"items":      snap.Items,
		"land_share": LandShare(snap.Census),
	}
	for kind, n := range snap.Census {
		fields["tiles_"+string(kind)] = n
	}
	log.WithFields(fields).Info("world snapshot")

	agents := append(snap.Agents[:0:0], snap.Agents...)
	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	for _, a := range agents {
		log.WithFields(logrus.Fields{
			"tick":   snap.Tick,
			"name":   a.Name,
			"race":   a.Race,
			"x":      a.Position.X,
			"y":      a.Position.Y,
			"facing": a.Facing,
			"energy": a.Energy,
			"bag":    len(a.Bag),
		}).Info("character")
	}
	return nil
}

// Fanout saves to every sink and joins their errors.
type Fanout []ports.SnapshotSink

func (f Fanout) Save(ctx context.Context, snap ports.Snapshot) error {
	var errs []error
	for i, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Save(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// LandShare is the fraction of walkable tiles in a census.
func LandShare(census map[terrain.Kind]int) float64 {
	total, land := 0, 0
	for kind, n := range census {
		total += n
		if kind.Walkable() {
			land += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(land) / float64(total)
}
