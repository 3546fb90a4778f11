package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

// SoftDelete is embedded by entities that are never hard-deleted.
type SoftDelete struct {
	DeletedAt *time.Time `db:"deleted_at"`
}

func (s *SoftDelete) Deleted() bool {
	return s.DeletedAt != nil
}
