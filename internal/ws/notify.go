package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type AssignmentEvent struct {
	Type        string    `json:"type"`
	ProjectID   uuid.UUID `json:"project_id"`
	PersonnelID uuid.UUID `json:"personnel_id"`
	Action      string    `json:"action"`
	Utilization int       `json:"utilization_percentage"`
	Status      string    `json:"status"`
	Timestamp   string    `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyAssignmentChanged pushes an assignment mutation to every connected
// client. Best effort: no hub, no event.
func NotifyAssignmentChanged(projectID, personnelID uuid.UUID, action string, utilization int, status string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := AssignmentEvent{
		Type:        "assignment_changed",
		ProjectID:   projectID,
		PersonnelID: personnelID,
		Action:      action,
		Utilization: utilization,
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
