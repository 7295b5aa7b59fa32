package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"islandsim/internal/adapter/repo/gorm/model"
	"islandsim/internal/app/ports"
	"islandsim/internal/domain/agent"
	"islandsim/internal/domain/terrain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) Save(ctx context.Context, snap ports.Snapshot) error {
	census, err := json.Marshal(snap.Census)
	if err != nil {
		return err
	}
	agents, err := json.Marshal(snap.Agents)
	if err != nil {
		return err
	}
	row := model.WorldSnapshot{
		Tick:      int64(snap.Tick),
		TakenAt:   snap.TakenAt,
		Census:    census,
		ItemCount: int32(snap.Items),
		Agents:    agents,
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&row).Error
}

func (r SnapshotRepo) Latest(ctx context.Context) (ports.Snapshot, error) {
	var row model.WorldSnapshot
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "tick"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Snapshot{}, ports.ErrNotFound
		}
		return ports.Snapshot{}, err
	}

	out := ports.Snapshot{
		Tick:    uint64(row.Tick),
		TakenAt: row.TakenAt,
		Items:   int(row.ItemCount),
		Census:  map[terrain.Kind]int{},
		Agents:  []agent.View{},
	}
	if err := json.Unmarshal(row.Census, &out.Census); err != nil {
		return ports.Snapshot{}, fmt.Errorf("decode census: %w", err)
	}
	if err := json.Unmarshal(row.Agents, &out.Agents); err != nil {
		return ports.Snapshot{}, fmt.Errorf("decode agents: %w", err)
	}
	return out, nil
}
