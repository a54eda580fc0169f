package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// ActorID values are supplied by the identity collaborator; the core never
// validates or resolves them.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // Actor reference
}
