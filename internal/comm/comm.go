package comm

import (
	"encoding/json"
	"time"
)

// Message types.
const (
	TypeRecordChanged = "record.changed"
	TypeError         = "error"
	TypePing          = "ping"
	TypePong          = "pong"
)

// RecordsTopic carries RecordChanged events between service instances.
const RecordsTopic = "sgsc.records"

// Mutation kinds.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "record.changed", "ping"
	Data     json.RawMessage `json:"data,omitempty"`
	SocketId string          `json:"socketid,omitempty"`
}

// RecordChanged announces a mutation of one row.
type RecordChanged struct {
	Table    string    `json:"table"`
	Op       string    `json:"op"`
	ID       string    `json:"id"`
	Actor    string    `json:"actor,omitempty"`
	Instance string    `json:"instance"` // publishing service instance
	At       time.Time `json:"at"`
}

// LiveChange is the part of a RecordChanged that browsers receive.
type LiveChange struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    string `json:"id"`
}

// Live drops the actor and instance, which stay between services.
func (ev RecordChanged) Live() LiveChange {
	return LiveChange{Table: ev.Table, Op: ev.Op, ID: ev.ID}
}

// NewMessage wraps v as the data of a message of the given type.
func NewMessage(msgType string, v any) (*WSMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &WSMessage{Type: msgType, Data: data}, nil
}
