package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one line of the append-only audit trail. Entries are
// never updated; deletion happens only through retention cleanup.
type ActivityEntry struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Activity  string    `db:"activity"`
	CreatedAt time.Time `db:"created_at"`
}
