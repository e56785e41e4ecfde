// Package session tracks per-user presentation state across searches.
//
// A Session decides which one-time notices accompany a search response:
// the bucket legend, a hint to pick preferences, and a feedback prompt.
// Sessions are not safe for concurrent use; each user owns one.
package session

import (
	"github.com/google/uuid"

	"github.com/hyperjump/homematch/internal/models"
	"github.com/hyperjump/homematch/internal/ranking"
)

// DefaultFeedbackAfter is the number of searches after which feedback is requested once.
const DefaultFeedbackAfter = 4

// NoticeKind identifies a notice.
type NoticeKind string

const (
	NoticeLegend            NoticeKind = "legend"
	NoticeSelectPreferences NoticeKind = "select_preferences"
	NoticeFeedback          NoticeKind = "feedback"
)

// Notice is an informational message shown alongside results.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

const (
	legendIntro           = "Here's a quick guide to help you understand how well each property matches your preferences:"
	selectPreferencesText = "Try selecting what you care the most in a home and see how well each property matches your preferences."
	feedbackText          = "If you have any questions, feedback or suggestions, we would love to hear from you!"
)

// Session is the explicit state that spans searches of one user.
type Session struct {
	ID               string `json:"id"`
	FirstSearchDone  bool   `json:"first_search_done"`
	SearchesCount    int    `json:"searches_count"`
	FeatureSearches  int    `json:"feature_searches"`
	AskedForFeedback bool   `json:"asked_for_feedback"`

	feedbackAfter int
}

// Option configures a Session.
type Option func(*Session)

// WithFeedbackAfter sets how many searches pass before the feedback prompt.
func WithFeedbackAfter(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.feedbackAfter = n
		}
	}
}

// New starts an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		ID:            uuid.NewString(),
		feedbackAfter: DefaultFeedbackAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record counts a completed search and returns the notices to show with it.
// Rejected searches (validation errors) should not be recorded.
func (s *Session) Record(resp *models.SearchResponse) []Notice {
	s.FirstSearchDone = true
	s.SearchesCount++

	var notices []Notice
	if s.SearchesCount > s.feedbackAfter && !s.AskedForFeedback {
		s.AskedForFeedback = true
		notices = append(notices, Notice{Kind: NoticeFeedback, Message: feedbackText})
	}

	if resp == nil || resp.Status != models.StatusOK {
		return notices
	}
	if len(resp.Preferences) > 0 {
		s.FeatureSearches++
		if s.FeatureSearches == 1 {
			notices = append(notices, Notice{
				Kind:    NoticeLegend,
				Message: legendIntro + "\n" + ranking.Legend(),
			})
		}
	} else if s.FeatureSearches == 0 {
		notices = append(notices, Notice{Kind: NoticeSelectPreferences, Message: selectPreferencesText})
	}
	return notices
}
