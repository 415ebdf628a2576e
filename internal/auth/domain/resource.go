package domain

import "time"

// Resource is the ownership record the access resolver consumes: who created
// a piece of content (dashboard, dataset, query, chart, file) and which team,
// if any, it is shared into. The content itself lives with the services that
// produce it; only the access facts live here.
type Resource struct {
	ID        string
	Type      string // "dashboard", "dataset", "query", "chart", "file"
	OwnerID   string
	TeamID    *string // nil when the resource is personal
	Name      string
	CreatedAt time.Time
}
