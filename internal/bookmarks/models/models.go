// Package models holds the bookmark record type.
package models

import (
	"time"

	"github.com/google/uuid"

	id "campus/pkg/domain"
)

// Bookmark marks a course block a learner wants to return to.
type Bookmark struct {
	ID          uuid.UUID    `json:"id"`
	UserID      id.UserID    `json:"user_id"`
	CourseID    id.CourseKey `json:"course_id"`
	UsageKey    string       `json:"usage_key"`
	DisplayName string       `json:"display_name"`
	CreatedAt   time.Time    `json:"created_at"`
}
