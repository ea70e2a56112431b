package dto

import "github.com/google/uuid"

type AssignmentChangeResponse struct {
	ProjectID   uuid.UUID `json:"project_id"`
	PersonnelID uuid.UUID `json:"personnel_id"`
	Action      string    `json:"action"`
	Utilization int       `json:"utilization_percentage"`
	Status      string    `json:"status"`
}
