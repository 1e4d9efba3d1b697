package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dynbilliards/backend/internal/billiards"
)

// WSMessage is the envelope of every client message.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type FieldEditData struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

type FormationData struct {
	Formation int `json:"formation"`
}

type BallSelectData struct {
	Ball int `json:"ball"`
}

type PlaybackSpeedData struct {
	FPS int `json:"fps"`
}

type TraceData struct {
	Enabled bool `json:"enabled"`
}

type ResizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var errBadPayload = errors.New("invalid payload")

type eventDecoder func(data json.RawMessage) (billiards.Event, error)

// decoders maps message types that carry an edit event to their decoder.
var decoders = map[string]eventDecoder{
	string(billiards.EventFieldEdit): func(data json.RawMessage) (billiards.Event, error) {
		var d FieldEditData
		if err := json.Unmarshal(data, &d); err != nil || d.Value == nil {
			return billiards.Event{}, errBadPayload
		}
		return billiards.FieldEdit(billiards.Field(d.Field), *d.Value), nil
	},
	string(billiards.EventFormationChange): func(data json.RawMessage) (billiards.Event, error) {
		var d FormationData
		if err := json.Unmarshal(data, &d); err != nil {
			return billiards.Event{}, errBadPayload
		}
		return billiards.FormationChange(d.Formation), nil
	},
	string(billiards.EventBallSelect): func(data json.RawMessage) (billiards.Event, error) {
		var d BallSelectData
		if err := json.Unmarshal(data, &d); err != nil {
			return billiards.Event{}, errBadPayload
		}
		return billiards.BallSelect(d.Ball), nil
	},
	string(billiards.EventPlaybackSpeed): func(data json.RawMessage) (billiards.Event, error) {
		var d PlaybackSpeedData
		if err := json.Unmarshal(data, &d); err != nil {
			return billiards.Event{}, errBadPayload
		}
		return billiards.PlaybackSpeed(d.FPS), nil
	},
	string(billiards.EventTrace): func(data json.RawMessage) (billiards.Event, error) {
		var d TraceData
		if err := json.Unmarshal(data, &d); err != nil {
			return billiards.Event{}, errBadPayload
		}
		return billiards.TraceToggle(d.Enabled), nil
	},
	string(billiards.EventResize): func(data json.RawMessage) (billiards.Event, error) {
		var d ResizeData
		if err := json.Unmarshal(data, &d); err != nil {
			return billiards.Event{}, errBadPayload
		}
		return billiards.Resize(d.Width, d.Height), nil
	},
}

// handleMessage processes one client message.
func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "get_state":
		c.sendState()
		return
	case "start":
		c.handleStart()
		return
	}

	decode, ok := decoders[msg.Type]
	if !ok {
		c.sendError("Unknown message type")
		return
	}
	ev, err := decode(msg.Data)
	if err != nil {
		c.sendError(fmt.Sprintf("Invalid %s data", msg.Type))
		return
	}
	if err := c.session.Apply(ev); err != nil {
		c.sendError(err.Error())
		return
	}
	// echoes clamped values back to the client
	c.sendState()
}

// handleStart builds the request and hands it to the table's engine. The
// session stays open so the user can adjust and start again.
func (c *Client) handleStart() {
	req, err := c.session.Start()
	if err != nil {
		var verr *billiards.ValidationError
		if errors.As(err, &verr) {
			log.Printf("[SIM] session %s: invariant breach: %v", c.session.ID, err)
		}
		c.sendError(err.Error())
		return
	}

	table := c.session.Table()
	eng, err := c.srv.engines.Lookup(table.Engine)
	if err != nil {
		log.Printf("[SIM] session %s: %v", c.session.ID, err)
		c.sendError("No simulation engine for this table")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := eng.Run(ctx, req); err != nil {
		log.Printf("[SIM] session %s: engine %s failed: %v", c.session.ID, table.Engine, err)
		c.sendError("Simulation engine unavailable")
		return
	}

	runID, err := c.srv.journal.Record(ctx, c.session.ID, table.Engine, req)
	if err != nil {
		log.Printf("[DB] session %s: %v", c.session.ID, err)
	}

	log.Printf("[SIM] session %s started %s simulation (formation=%d run=%d)", c.session.ID, table.Type, req.Formation, runID)
	c.sendJSON(map[string]interface{}{
		"type":    "simulation_started",
		"run_id":  runID,
		"engine":  table.Engine,
		"request": req,
	})
}
