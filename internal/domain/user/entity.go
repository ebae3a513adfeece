package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User is the engine's view of a platform account: identity plus sanction
// state. Profile data lives elsewhere.
type User struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	Nickname       string       `db:"nickname" json:"nickname"`
	Role           string       `db:"role" json:"role"`
	WarningCount   int          `db:"warning_count" json:"warning_count"`
	LastWarnedAt   sql.NullTime `db:"last_warned_at" json:"last_warned_at,omitempty"`
	BannedAt       sql.NullTime `db:"banned_at" json:"banned_at,omitempty"`
	BannedUntil    sql.NullTime `db:"banned_until" json:"banned_until,omitempty"`
	IsPermanentBan bool         `db:"is_permanent_ban" json:"is_permanent_ban"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// Banned reports whether the user is currently banned.
func (u *User) Banned(now time.Time) bool {
	if u.IsPermanentBan {
		return true
	}
	return u.BannedUntil.Valid && now.Before(u.BannedUntil.Time)
}
