package model

import "github.com/google/uuid"

type JobRole struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// JobRoleCreate is the client-supplied part of a JobRole. Id and owner are
// assigned by the server.
type JobRoleCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type JobRolesPublic struct {
	Data  []JobRole `json:"data"`
	Count int       `json:"count"`
}
