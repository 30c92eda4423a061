package feed

import "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"

type EventType string

const (
	EventReviewCreated EventType = "review_created"
	EventReviewUpdated EventType = "review_updated"
	EventReviewDeleted EventType = "review_deleted"
)

// Event is pushed to every feed subscriber after a review mutation commits.
// Stats is the aggregate as of that commit.
type Event struct {
	Type     EventType   `json:"type"`
	Review   *dto.Review `json:"review,omitempty"`
	ReviewID string      `json:"review_id,omitempty"`
	Stats    dto.Stats   `json:"stats"`
}
