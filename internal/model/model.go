// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account. The password is never stored in plaintext;
// only the bcrypt hash is persisted.
type User struct {
	ID        uuid.UUID // PK, assigned at registration, immutable
	FirstName string
	LastName  string
	Email     string // unique, case-sensitive as stored
	PwdHash   []byte // bcrypt(password)
	CreatedAt time.Time
}

// Payload is a free-form template body. No schema is enforced; templates
// are intentionally generic key/value documents.
type Payload map[string]any

// Template is a single stored document with exactly one owner.
type Template struct {
	ID        uuid.UUID // store-assigned PK
	OwnerID   uuid.UUID // set once at creation, never user-supplied
	Payload   Payload
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateSummary pairs a template id with its payload for listings.
type TemplateSummary struct {
	ID      uuid.UUID
	Payload Payload
}
