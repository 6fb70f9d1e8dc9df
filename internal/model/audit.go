package model

import "time"

// Audit is the envelope of creation/update/soft-delete stamps shared by
// every mutable entity. A nil DeletedAt means the record is active;
// soft-deleted records are filtered out at the repository boundary.
type Audit struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by" gorm:"type:uuid"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy *string    `json:"updated_by,omitempty" gorm:"type:uuid"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	DeletedBy *string    `json:"deleted_by,omitempty" gorm:"type:uuid"`
}

// StampCreated records the creating actor. Called exactly once, before
// the first save.
func (a *Audit) StampCreated(actor string) {
	a.CreatedAt = time.Now().UTC()
	a.CreatedBy = actor
}

// StampUpdated records the mutating actor on every update
func (a *Audit) StampUpdated(actor string) {
	now := time.Now().UTC()
	a.UpdatedAt = &now
	a.UpdatedBy = &actor
}

// StampDeleted marks the record as soft-deleted. The timestamp is taken
// as a parameter so cascaded deletions (a sale and its lines) carry an
// identical stamp.
func (a *Audit) StampDeleted(actor string, at time.Time) {
	a.DeletedAt = &at
	a.DeletedBy = &actor
}

// IsDeleted reports whether the record has been soft-deleted
func (a *Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
