package model

import "time"

// Metadata carries the audit columns shared by every persisted table.
// The timestamps are stored explicitly so responses can echo when a
// booking or rule was created without a second lookup.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"  json:"created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by"`
}
