package services

import (
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ScheduleLayout is the timestamp format accepted for scheduled and
// explicit publish dates.
const ScheduleLayout = "2006-01-02 15:04:05"

// Lifecycle governs post status transitions: the auto-publish sweep that
// moves scheduled posts to published once their time has elapsed, and the
// edit-time policy for status changes.
type Lifecycle struct {
	posts  *database.PostRepo
	logger zerolog.Logger
}

func NewLifecycle(posts *database.PostRepo) *Lifecycle {
	return &Lifecycle{
		posts:  posts,
		logger: log.With().Str("service", "lifecycle").Logger(),
	}
}

// PublishDue flips every scheduled post whose publish time has elapsed to
// published, persisting each row individually so one failure does not
// block the rest. It runs synchronously inline with public blog requests;
// there is no background scheduler.
func (l *Lifecycle) PublishDue(now time.Time) {
	scheduled, err := l.posts.FindScheduled()
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to load scheduled posts")
		return
	}

	for _, post := range scheduled {
		if post.PublishedDate == nil || post.PublishedDate.After(now) {
			continue
		}
		if err := l.posts.UpdateStatus(post.ID, models.StatusPublished); err != nil {
			l.logger.Error().Err(err).Str("slug", post.Slug).Msg("failed to publish scheduled post")
			continue
		}
		l.logger.Info().Str("slug", post.Slug).Msg("scheduled post published")
	}
}

// StatusInput is the raw status block of a post save request. Dates are
// the editor-supplied strings in ScheduleLayout format.
type StatusInput struct {
	Status        string
	ScheduledDate string
	PublishedDate string
}

// StatusResolution is the outcome of applying the edit-time policy.
// Warning is non-empty when the requested state could not be honored and
// the post was downgraded; the save still succeeds.
type StatusResolution struct {
	Status        string
	PublishedDate *time.Time
	Warning       string
}

// ResolveStatus applies the edit-time scheduling policy. A scheduled save
// needs a parsable, strictly future date or the post is downgraded to
// draft with a warning; a published save without an explicit date keeps
// the existing publish date or stamps now. existing is the post's current
// publish date (nil for a new post).
func ResolveStatus(in StatusInput, existing *time.Time, now time.Time) StatusResolution {
	switch in.Status {
	case models.StatusScheduled:
		scheduledAt, err := time.Parse(ScheduleLayout, in.ScheduledDate)
		if err != nil {
			return StatusResolution{
				Status:        models.StatusDraft,
				PublishedDate: existing,
				Warning:       "Invalid scheduled date format. Post saved as draft.",
			}
		}
		if !scheduledAt.After(now) {
			return StatusResolution{
				Status:        models.StatusDraft,
				PublishedDate: existing,
				Warning:       "Scheduled date must be in the future. Post saved as draft.",
			}
		}
		return StatusResolution{Status: models.StatusScheduled, PublishedDate: &scheduledAt}

	case models.StatusPublished:
		if in.PublishedDate != "" {
			if publishedAt, err := time.Parse(ScheduleLayout, in.PublishedDate); err == nil {
				return StatusResolution{Status: models.StatusPublished, PublishedDate: &publishedAt}
			}
		}
		if existing != nil {
			return StatusResolution{Status: models.StatusPublished, PublishedDate: existing}
		}
		return StatusResolution{Status: models.StatusPublished, PublishedDate: &now}

	default:
		return StatusResolution{Status: models.StatusDraft, PublishedDate: existing}
	}
}
