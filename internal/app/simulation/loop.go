package simulation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"islandsim/internal/app/ports"
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/terrain"

	"github.com/sirupsen/logrus"
)

const (
	DefaultInputTimeout = 10 * time.Second
	defaultQueueSize    = 16
)

type Config struct {
	World         *World
	Forager       agent.Forager
	InputTimeout  time.Duration
	SnapshotEvery uint64
	Sink          ports.SnapshotSink
	Metrics       ports.SimulationMetrics
	Log           logrus.FieldLogger
	Now           func() time.Time
	QueueSize     int
}

// Loop advances the world one tick per received command, or once per
// InputTimeout when nobody is typing. Snapshots are handed to a background
// worker and dropped while the worker is busy.
type Loop struct {
	cfg      Config
	commands chan Command
	snaps    chan ports.Snapshot
	tick     atomic.Uint64
	dropped  atomic.Uint64
	lastMu   sync.RWMutex
	last     *CommandResult
}

type TickReport struct {
	Tick    uint64         `json:"tick"`
	Command *CommandResult `json:"command,omitempty"`
	Reports []agent.Report `json:"-"`
	Elapsed time.Duration  `json:"elapsed"`
}

func NewLoop(cfg Config) *Loop {
	if cfg.InputTimeout <= 0 {
		cfg.InputTimeout = DefaultInputTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger().WithField("component", "simulation")
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	return &Loop{
		cfg:      cfg,
		commands: make(chan Command, cfg.QueueSize),
		snaps:    make(chan ports.Snapshot, 1),
	}
}

func (l *Loop) World() *World {
	return l.cfg.World
}

func (l *Loop) Tick() uint64 {
	return l.tick.Load()
}

func (l *Loop) DroppedSnapshots() uint64 {
	return l.dropped.Load()
}

func (l *Loop) LastCommand() (CommandResult, bool) {
	l.lastMu.RLock()
	defer l.lastMu.RUnlock()
	if l.last == nil {
		return CommandResult{}, false
	}
	return *l.last, true
}

// Submit queues a player command without blocking.
func (l *Loop) Submit(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		if l.cfg.Metrics != nil {
			l.cfg.Metrics.RecordCommand(false)
		}
		return err
	}
	select {
	case l.commands <- cmd:
		return nil
	default:
		if l.cfg.Metrics != nil {
			l.cfg.Metrics.RecordCommand(false)
		}
		return ErrInputBusy
	}
}

// Run ticks until ctx is done. It returns nil on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.snapshotWorker(ctx)
	}()
	defer wg.Wait()

	timer := time.NewTimer(l.cfg.InputTimeout)
	defer timer.Stop()
	for {
		var cmd *Command
		select {
		case <-ctx.Done():
			return nil
		case c := <-l.commands:
			cmd = &c
		case <-timer.C:
		}
		timer.Reset(l.cfg.InputTimeout)

		if _, err := l.Step(ctx, cmd); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			l.cfg.Log.WithError(err).Warn("tick finished with errors")
		}
	}
}

// Step runs one tick: the optional player command first, then every
// autonomous character.
func (l *Loop) Step(ctx context.Context, cmd *Command) (TickReport, error) {
	if err := ctx.Err(); err != nil {
		return TickReport{}, err
	}
	startedAt := l.cfg.Now()
	w := l.cfg.World
	report := TickReport{}

	if cmd != nil {
		res := l.apply(*cmd)
		report.Command = &res
		l.lastMu.Lock()
		l.last = &res
		l.lastMu.Unlock()
		if l.cfg.Metrics != nil {
			l.cfg.Metrics.RecordCommand(res.Err == "")
		}
	}

	reports, err := w.Roster.AutomateAll(w.Grid, w.Items, l.cfg.Forager)
	report.Reports = reports
	l.record(reports, err)

	report.Tick = l.tick.Add(1)
	report.Elapsed = l.cfg.Now().Sub(startedAt)
	if l.cfg.Metrics != nil {
		l.cfg.Metrics.RecordTick(report.Elapsed)
	}
	if l.cfg.SnapshotEvery > 0 && report.Tick%l.cfg.SnapshotEvery == 0 {
		l.requestSnapshot(report.Tick)
	}
	l.cfg.Log.WithFields(logrus.Fields{
		"tick":       report.Tick,
		"characters": len(reports),
		"command":    cmd != nil,
	}).Debug("tick")
	return report, err
}

func (l *Loop) record(reports []agent.Report, err error) {
	if l.cfg.Metrics == nil {
		return
	}
	for _, r := range reports {
		if r.Move.Result != "" {
			l.cfg.Metrics.RecordMove(string(r.Move.Result))
		}
		if r.Picked != nil {
			l.cfg.Metrics.RecordPickup(r.Evicted != nil)
		}
	}
	if err != nil {
		l.cfg.Metrics.RecordFailure()
	}
}

func (l *Loop) apply(cmd Command) CommandResult {
	res := CommandResult{Command: cmd}
	if err := cmd.Validate(); err != nil {
		res.Err = err.Error()
		return res
	}
	w := l.cfg.World
	if cmd.Type == CommandRaiseEarth {
		w.Grid.RaiseEarth()
		return res
	}
	if w.Player == "" {
		res.Err = ErrNoPlayer.Error()
		return res
	}

	mover := l.cfg.Forager.Mover
	err := w.Roster.With(w.Player, func(c *agent.Character) error {
		switch cmd.Type {
		case CommandStep:
			out, err := mover.StepForward(w.Grid, c)
			if err != nil {
				return err
			}
			res.Move = &out
		case CommandTurnLeft:
			c.TurnLeft()
		case CommandTurnRight:
			c.TurnRight()
		case CommandFace:
			d, err := terrain.ParseDirection(cmd.Direction)
			if err != nil {
				return err
			}
			c.Face(d)
		case CommandRest:
			c.Rest()
		case CommandEat:
			it, err := agent.Eat(c)
			if err != nil {
				return err
			}
			res.Item = &it
		case CommandPickUp:
			it, err := agent.PickUpHere(w.Items, c)
			if err != nil {
				return err
			}
			res.Item = &it
		}
		return nil
	})
	if err != nil {
		res.Err = err.Error()
		l.cfg.Log.WithFields(logrus.Fields{"command": cmd.Type, "player": w.Player}).WithError(err).Info("command rejected")
	}
	return res
}

func (l *Loop) requestSnapshot(tick uint64) {
	if l.cfg.Sink == nil {
		return
	}
	w := l.cfg.World
	snap := ports.Snapshot{
		Tick:    tick,
		TakenAt: l.cfg.Now(),
		Items:   w.Items.Count(),
		Agents:  w.Roster.Views(),
	}
	select {
	case l.snaps <- snap:
	default:
		l.dropped.Add(1)
		l.cfg.Log.WithField("tick", tick).Debug("snapshot worker busy, dropping snapshot")
	}
}

func (l *Loop) snapshotWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-l.snaps:
			snap.Census = l.cfg.World.Grid.Census()
			if err := l.cfg.Sink.Save(ctx, snap); err != nil {
				l.cfg.Log.WithError(err).WithField("tick", snap.Tick).Warn("save snapshot")
			}
		}
	}
}
