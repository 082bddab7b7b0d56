package worker

import (
	"context"

	"github.com/greenhollow/almanac/internal/session"
)

// UpdateJob runs one frame of the session's update pass when processed.
// The same job value is enqueued every frame; it carries no per-frame state.
type UpdateJob struct {
	sess *session.Session
}

// NewUpdateJob creates an update job bound to one session.
func NewUpdateJob(sess *session.Session) *UpdateJob {
	return &UpdateJob{sess: sess}
}

// Process advances the clock and updates the active region.
func (j *UpdateJob) Process(ctx context.Context) error {
	j.sess.Update(ctx)
	return nil
}
