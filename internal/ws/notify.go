package ws

import (
	"encoding/json"
	"time"

	"campus-prep/internal/datastore"
)

type RecordsChangedEvent struct {
	Type      string `json:"type"`
	Family    string `json:"family"`
	Timestamp string `json:"timestamp"`
}

// Notifier turns datastore mutations into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

var _ datastore.Notifier = (*Notifier)(nil)

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) RecordsChanged(family datastore.Family) {
	if n == nil || n.hub == nil {
		return
	}

	evt := RecordsChangedEvent{
		Type:      "records_changed",
		Family:    string(family),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
