package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind of entity a comment or image is attached to.
type TargetType string

const (
	TargetPlace TargetType = "place"
	TargetEvent TargetType = "event"
)

// Comment is a user rating attached to a place or event.
// Rating is 1..5; nil means a comment without a score.
type Comment struct {
	CommentID  uuid.UUID
	TargetType TargetType
	TargetID   uuid.UUID
	Rating     *int
	CreatedAt  time.Time
}
