package main

import (
	"context"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	httpadapter "islandsim/internal/adapter/http"
	metricsinmem "islandsim/internal/adapter/metrics/inmemory"
	gormrepo "islandsim/internal/adapter/repo/gorm"
	memoryrepo "islandsim/internal/adapter/repo/memory"
	snapshotsink "islandsim/internal/adapter/snapshot"
	"islandsim/internal/app/observe"
	"islandsim/internal/app/ports"
	"islandsim/internal/app/simulation"
	"islandsim/internal/app/worldbuild"
	"islandsim/internal/domain/agent"
	"islandsim/internal/logger"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/sirupsen/logrus"
)

type config struct {
	Seed          int64
	Size          int
	Margin        int
	Noise         string
	Workers       int
	Food          int
	Useful        int
	InputTimeout  time.Duration
	SnapshotEvery uint64
	HTTPAddr      string
	DSN           string
	MigrationsDir string
}

func loadConfig() config {
	size := intEnv("WORLD_SIZE", 2048)
	boot := simulation.DefaultBootstrap(size)
	return config{
		Seed:          int64Env("WORLD_SEED", time.Now().UnixNano()),
		Size:          size,
		Margin:        intEnv("WORLD_MARGIN", 5),
		Noise:         stringEnv("WORLD_NOISE", "perlin"),
		Workers:       intEnv("WORLD_WORKERS", runtime.NumCPU()),
		Food:          intEnv("WORLD_FOOD", boot.FoodCount),
		Useful:        intEnv("WORLD_USEFUL", boot.UsefulCount),
		InputTimeout:  durationEnv("SIM_INPUT_TIMEOUT_SECONDS", simulation.DefaultInputTimeout),
		SnapshotEvery: uint64(max(0, intEnv("SIM_SNAPSHOT_EVERY", 100))),
		HTTPAddr:      stringEnv("HTTP_ADDR", ":8080"),
		DSN:           stringEnv("ISLANDSIM_DB_DSN", ""),
		MigrationsDir: stringEnv("ISLANDSIM_MIGRATIONS_DIR", "./db/migrations"),
	}
}

func main() {
	logger.Init()
	log := logger.Component("server")
	cfg := loadConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	memStore := memoryrepo.NewStore()
	var terrainStore ports.TerrainStore = memoryrepo.NewTerrainChunkRepo(memStore)
	var txManager ports.TxManager = memoryrepo.NewTxManager(memStore)
	snapshots := memoryrepo.NewSnapshotRepo(memStore)
	sinks := snapshotsink.Fanout{snapshotsink.LogSink{Log: logger.Component("snapshot")}, snapshots}
	if cfg.DSN != "" {
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			log.WithError(err).Fatal("open postgres")
		}
		if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir, logger.Component("migrator")); err != nil {
			log.WithError(err).Fatal("apply migrations")
		}
		terrainStore = gormrepo.NewTerrainChunkRepo(db)
		txManager = gormrepo.NewTxManager(db)
		sinks = append(sinks, gormrepo.NewSnapshotRepo(db))
		log.Info("terrain cache: postgres")
	}

	built, err := worldbuild.UseCase{
		Store:     terrainStore,
		TxManager: txManager,
		Workers:   cfg.Workers,
		Log:       logger.Component("worldbuild"),
	}.Execute(ctx, worldbuild.Request{Seed: cfg.Seed, Size: cfg.Size, Margin: cfg.Margin, Noise: cfg.Noise})
	if err != nil {
		log.WithError(err).Fatal("build world")
	}

	boot := simulation.DefaultBootstrap(cfg.Size)
	boot.FoodCount = cfg.Food
	boot.UsefulCount = cfg.Useful
	rng := rand.New(rand.NewSource(cfg.Seed))
	world, err := simulation.Bootstrap(built.Grid, boot, rng)
	if err != nil {
		log.WithError(err).Fatal("bootstrap world")
	}

	kpiRecorder := metricsinmem.NewRecorder()
	loop := simulation.NewLoop(simulation.Config{
		World:         world,
		Forager:       agent.Forager{Mover: agent.Mover{Rand: rand.New(rand.NewSource(cfg.Seed + 1))}},
		InputTimeout:  cfg.InputTimeout,
		SnapshotEvery: cfg.SnapshotEvery,
		Sink:          sinks,
		Metrics:       kpiRecorder,
		Log:           logger.Component("simulation"),
	})
	go func() {
		if err := loop.Run(ctx); err != nil {
			log.WithError(err).Error("simulation stopped")
		}
	}()

	h := httpadapter.Handler{
		ObserveUC: observe.UseCase{World: world, Snapshots: snapshots},
		Commands:  loop,
		KPI:       kpiRecorder,
	}
	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	s.OnShutdown = append(s.OnShutdown, func(context.Context) { cancel() })
	h.RegisterRoutes(s)

	log.WithFields(logrus.Fields{
		"addr":   cfg.HTTPAddr,
		"seed":   cfg.Seed,
		"size":   cfg.Size,
		"player": world.Player,
		"items":  world.Items.Count(),
	}).Info("islandsim server listening")
	s.Spin()
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func int64Env(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// durationEnv reads a whole number of seconds.
func durationEnv(key string, fallback time.Duration) time.Duration {
	n := intEnv(key, -1)
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
