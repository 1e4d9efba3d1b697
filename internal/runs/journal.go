package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/dynbilliards/backend/internal/models"
	"github.com/jmoiron/sqlx"
)

// Journal records every request dispatched to an engine. A Journal without a
// database discards records.
type Journal struct {
	db *sqlx.DB
}

func NewJournal(db *sqlx.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Enabled() bool {
	return j != nil && j.db != nil
}

// Record stores req and returns the run ID, or 0 when the journal is disabled.
func (j *Journal) Record(ctx context.Context, sessionID, engine string, req *billiards.SimulationRequest) (int64, error) {
	if !j.Enabled() {
		return 0, nil
	}

	data, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	var id int64
	err = j.db.GetContext(ctx, &id,
		`INSERT INTO simulation_runs (session_id, table_type, engine, formation, request, created_at)
		 VALUES ($1,$2,$3,$4,$5::jsonb,NOW()) RETURNING id`,
		sessionID, string(req.TableType), engine, int(req.Formation), string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("insert simulation run: %w", err)
	}
	log.Printf("[DB] recorded run %d for session %s (%s, %d balls)", id, sessionID, req.TableType, len(req.Balls))
	return id, nil
}

// Recent returns the latest runs, newest first, optionally for one table type.
func (j *Journal) Recent(ctx context.Context, tableType string, limit int) ([]models.SimulationRun, error) {
	if !j.Enabled() {
		return []models.SimulationRun{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs := []models.SimulationRun{}
	query := `SELECT id, session_id, table_type, engine, formation, request, created_at
		FROM simulation_runs`
	args := []interface{}{}
	if tableType != "" {
		query += ` WHERE table_type = $1`
		args = append(args, tableType)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	if err := j.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, fmt.Errorf("list simulation runs: %w", err)
	}
	return runs, nil
}
