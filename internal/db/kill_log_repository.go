package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akorchagin/mobd/internal/combat"
)

// KillRecord is one row of the kill log.
type KillRecord struct {
	Tick            uint64
	VictimID        uint32
	VictimArchetype string
	KillerID        uint32
	KillerArchetype string
	Fingerprint     string
}

// KillLogRepository persists kill records.
type KillLogRepository struct {
	pool *pgxpool.Pool
}

// NewKillLogRepository creates a repository over the given pool.
func NewKillLogRepository(pool *pgxpool.Pool) *KillLogRepository {
	return &KillLogRepository{pool: pool}
}

// RecordKill inserts one kill row.
func (r *KillLogRepository) RecordKill(ctx context.Context, rec KillRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO kill_log
		   (tick, victim_id, victim_archetype, killer_id, killer_archetype, bestiary_fingerprint)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		int64(rec.Tick), int64(rec.VictimID), rec.VictimArchetype,
		int64(rec.KillerID), rec.KillerArchetype, rec.Fingerprint,
	)
	if err != nil {
		return fmt.Errorf("inserting kill record: %w", err)
	}
	return nil
}

// KillLogSink feeds agent-death events into the repository without blocking
// the tick goroutine: HandleEvent enqueues, Run drains. A full queue drops
// the record with a warning; the kill log is an analytics artifact, not a
// correctness dependency.
type KillLogSink struct {
	repo        *KillLogRepository
	fingerprint string
	queue       chan combat.Event
}

// NewKillLogSink creates a sink with the given queue capacity.
func NewKillLogSink(repo *KillLogRepository, fingerprint string, capacity int) *KillLogSink {
	if capacity <= 0 {
		capacity = 256
	}
	return &KillLogSink{
		repo:        repo,
		fingerprint: fingerprint,
		queue:       make(chan combat.Event, capacity),
	}
}

// HandleEvent implements combat.Sink.
func (s *KillLogSink) HandleEvent(event combat.Event) {
	if event.Kind != combat.EventAgentDied {
		return
	}
	select {
	case s.queue <- event:
	default:
		slog.Warn("kill log queue full, dropping record",
			"victim", event.AgentID)
	}
}

// Run drains the queue until the context is cancelled.
func (s *KillLogSink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-s.queue:
			writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := s.repo.RecordKill(writeCtx, KillRecord{
				Tick:            event.Tick,
				VictimID:        event.AgentID,
				VictimArchetype: event.Archetype,
				KillerID:        event.KillerID,
				KillerArchetype: event.KillerArchetype,
				Fingerprint:     s.fingerprint,
			})
			cancel()
			if err != nil {
				slog.Error("recording kill", "victim", event.AgentID, "error", err)
			}
		}
	}
}
