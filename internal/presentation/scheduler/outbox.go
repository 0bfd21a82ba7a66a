package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/pocketvibe/pocketvibe-backend/internal/application"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/consts"
	"github.com/pocketvibe/pocketvibe-backend/internal/application/events"
	"github.com/pocketvibe/pocketvibe-backend/internal/infra/db"
	dbs "github.com/pocketvibe/pocketvibe-backend/pkg/db"
	"github.com/pocketvibe/pocketvibe-backend/pkg/env"
)

// OutboxPoller drains the outbox: it claims a batch of pending rows, marks
// them processing, and dispatches each to its handler on its own goroutine.
// A handler error parks the row in error; there are no retries, the client
// re-submits with a fresh id instead.
type OutboxPoller struct {
	processors *application.Processors
	uowFactory *dbs.UOWFactory
	cfg        *OutboxConfig
	stop       chan struct{}
}

type OutboxConfig struct {
	limit      uint8
	interval   uint16
	jobTimeout time.Duration
}

func NewOutboxConfig() *OutboxConfig {
	limit, err := strconv.Atoi(env.GetEnv("SCHEDULER_LIMIT", "5"))
	if err != nil {
		limit = 5
	}

	interval, err := strconv.Atoi(env.GetEnv("SCHEDULER_INTERVAL", "5"))
	if err != nil {
		interval = 5
	}

	// generation jobs get 15 minutes before they are cut off as timed out
	jobTimeout, err := strconv.Atoi(env.GetEnv("SCHEDULER_JOB_TIMEOUT", "900"))
	if err != nil {
		jobTimeout = 900
	}

	return &OutboxConfig{
		limit:      uint8(limit),
		interval:   uint16(interval),
		jobTimeout: time.Duration(jobTimeout) * time.Second,
	}
}

func NewOutboxPoller(processors *application.Processors, uowFactory *dbs.UOWFactory, cfg *OutboxConfig) *OutboxPoller {
	return &OutboxPoller{processors: processors, uowFactory: uowFactory, cfg: cfg, stop: make(chan struct{})}
}

func (o *OutboxPoller) Start() {
	slog.Info("Starting outbox poller...")
	ticker := time.NewTicker(time.Duration(o.cfg.interval) * time.Second)
	defer ticker.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	for {
		select {
		case <-ticker.C:
			o.pollTable(ctx)
		case <-o.stop:
			slog.Info("Cancelling current execution")
			cancel()
			return
		}
	}
}

func (o *OutboxPoller) pollTable(ctx context.Context) {
	uow := o.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		slog.Error("error in poller", "err", err)
		return
	}

	query := `SELECT id, event, status, payload, created_at FROM pocketvibe.outbox
		WHERE status = 0 ORDER BY created_at FOR NO KEY UPDATE LIMIT $1`
	rows, err := tx.Query(ctx, query, o.cfg.limit)
	if err != nil {
		_ = uow.Rollback()
		slog.Error("error in poller", "err", err)
		return
	}

	var eventsToProcess []db.Outbox
	var eventIDs []int64
	for rows.Next() {
		var event db.Outbox
		if err = rows.Scan(&event.ID, &event.Event, &event.Status, &event.Payload, &event.CreatedAt); err != nil {
			slog.Error("error in poller", "err", err)
			continue
		}
		eventIDs = append(eventIDs, int64(event.ID))
		eventsToProcess = append(eventsToProcess, event)
	}
	if err = rows.Err(); err != nil {
		slog.Error("error reading result sets", "err", err)
	}
	rows.Close()

	if len(eventsToProcess) == 0 {
		_ = uow.Rollback()
		return
	}

	_, err = tx.Exec(ctx, "UPDATE pocketvibe.outbox SET status = $1 WHERE id = ANY($2)", consts.Processing, eventIDs)
	if err != nil {
		slog.Error("error setting events status to processing", "err", err)
	}
	if err := uow.Commit(); err != nil {
		slog.Error("err committing", "err", err)
		return
	}

	var wg sync.WaitGroup
	for _, event := range eventsToProcess {
		wg.Add(1)
		go func(ev db.Outbox) {
			defer wg.Done()
			o.handleEvent(ctx, ev)
		}(event)
	}
	wg.Wait()
}

func (o *OutboxPoller) handleEvent(ctx context.Context, outbox db.Outbox) {
	slog.Info("Handling event", "event", outbox.Event, "id", outbox.ID)

	jobCtx, cancel := context.WithTimeout(ctx, o.cfg.jobTimeout)
	defer cancel()

	status := consts.Processed
	var err error
	switch outbox.Event {
	case events.GenerateSite{}.GetType():
		var event events.GenerateSite
		if err = json.Unmarshal(outbox.Payload, &event); err == nil {
			err = o.processors.GenerateSite.Handle(jobCtx, event)
		}
	case events.GenerateCSS{}.GetType():
		var event events.GenerateCSS
		if err = json.Unmarshal(outbox.Payload, &event); err == nil {
			err = o.processors.GenerateCSS.Handle(jobCtx, event)
		}
	default:
		err = errors.New("unknown event type " + outbox.Event)
	}
	if err != nil {
		slog.Error("error in handler", "event", outbox.Event, "id", outbox.ID, "err", err)
		status = consts.InError
	}

	// status write runs outside the job timeout so a timed-out job can still
	// be accounted for
	uow := o.uowFactory.GetUoW()
	tx, errTx := uow.Begin()
	if errTx != nil {
		slog.Error("error in poller", "err", errTx)
		return
	}
	if _, err := tx.Exec(ctx, "UPDATE pocketvibe.outbox SET status = $1 WHERE id = $2", status, outbox.ID); err != nil {
		_ = uow.Rollback()
		slog.Error("error in poller", "err", err)
		return
	}
	if err := uow.Commit(); err != nil {
		slog.Error("error in poller", "err", err)
		return
	}

	slog.Info("processed event", "id", outbox.ID, "status", int(status))
}

func (o *OutboxPoller) Stop() {
	slog.Info("Stopping poller")
	o.stop <- struct{}{}
}
