package models

import (
	"encoding/json"
	"time"
)

// SimulationRun is one request handed to a simulation engine.
type SimulationRun struct {
	ID        int64           `db:"id" json:"id"`
	SessionID string          `db:"session_id" json:"session_id"`
	TableType string          `db:"table_type" json:"table_type"`
	Engine    string          `db:"engine" json:"engine"`
	Formation int             `db:"formation" json:"formation"`
	Request   json.RawMessage `db:"request" json:"request"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
