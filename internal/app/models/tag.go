package models

import "time"

// Tag is a genre label a document may reference
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func TagFromRecord(r Record) *Tag {
	return &Tag{
		ID:        r.Int64("id"),
		Name:      r.String("name"),
		CreatedAt: r.Time("createdAt"),
	}
}
