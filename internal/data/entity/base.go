package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseSimple is the header of append-only records.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
