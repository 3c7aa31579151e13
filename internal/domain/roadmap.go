package domain

import "github.com/mecrobet/marga/internal/media"

// RoadmapStep is one "Day N" / "Week N" section of a generated plan.
// Order is zero-based and follows document order.
type RoadmapStep struct {
	Title   string
	Content string
	Order   int
}

// RoadmapRequest carries everything the prompt builder needs for one
// generation call. It is never persisted.
type RoadmapRequest struct {
	Topic       string
	Level       Level
	Duration    Duration
	Attachments []media.EncodedImage
}

func (r RoadmapRequest) Validate() error {
	if _, err := ParseLevel(string(r.Level)); err != nil {
		return err
	}
	return r.Duration.Validate()
}
