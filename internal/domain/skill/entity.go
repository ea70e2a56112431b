package skill

import "github.com/google/uuid"

// Skill is catalog reference data. Deleting one cascades out of every
// person profile and project requirement set.
type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
}
