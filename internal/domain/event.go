package domain

import "time"

// ResolutionEvent is the audit record published after each resolution when
// event publishing is enabled. It records what was resolved and how, not the
// resolved name's history; nothing is persisted by this service.
type ResolutionEvent struct {
	Query      string    `json:"query"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	Category   string    `json:"category,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// NewResolutionEvent builds the audit record for a completed resolution.
func NewResolutionEvent(res Resolution, duration time.Duration) ResolutionEvent {
	return ResolutionEvent{
		Query:      res.Query,
		Name:       res.Name,
		Source:     res.Source,
		Category:   res.Category,
		DurationMS: duration.Milliseconds(),
		ResolvedAt: res.ResolvedAt,
	}
}
