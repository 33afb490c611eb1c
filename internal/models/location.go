// Package models contains data structures for the application's domain models.
package models

import "time"

// Location is an optional place tag on posts. Deleting a location leaves its
// posts in place with the reference nullified.
type Location struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
