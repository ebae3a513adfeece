package content

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Content is the engine's view of a reportable item (post, comment or
// message). Rendering and authoring live elsewhere; the engine only needs
// the soft-delete state.
type Content struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	ContentType   string         `db:"content_type" json:"content_type"`
	AuthorID      uuid.UUID      `db:"author_id" json:"author_id"`
	Body          string         `db:"body" json:"body"`
	IsDeleted     bool           `db:"is_deleted" json:"is_deleted"`
	DeletedReason sql.NullString `db:"deleted_reason" json:"deleted_reason,omitempty"`
	DeletedAt     sql.NullTime   `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}
