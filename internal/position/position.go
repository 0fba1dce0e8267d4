package position

import (
	"encoding/json"
	"time"

	positionDatamodel "github.com/sce-foundation/sce-portal/internal/core/datamodel/position"
)

// Position is foundation staff metadata. The permission strings are carried
// and persisted but nothing in the system enforces them against operations.
type Position struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ClearanceLevel int       `json:"clearance_level"`
	Permissions    []string  `json:"permissions"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToDataModel(p *Position) *positionDatamodel.Position {
	perms, err := json.Marshal(p.Permissions)
	if err != nil {
		perms = []byte("[]")
	}
	return &positionDatamodel.Position{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ClearanceLevel: p.ClearanceLevel,
		Permissions:    string(perms),
		CreatedAt:      p.CreatedAt,
	}
}

// FromDataModel tolerates a malformed permissions column by treating it as
// empty; the list is inert metadata and must not fail a read.
func FromDataModel(p *positionDatamodel.Position) *Position {
	var perms []string
	if p.Permissions != "" {
		if err := json.Unmarshal([]byte(p.Permissions), &perms); err != nil {
			perms = nil
		}
	}
	if perms == nil {
		perms = []string{}
	}
	return &Position{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ClearanceLevel: p.ClearanceLevel,
		Permissions:    perms,
		CreatedAt:      p.CreatedAt,
	}
}
