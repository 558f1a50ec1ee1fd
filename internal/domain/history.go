package domain

import "time"

// HistoryEntry is one recorded search query.
type HistoryEntry struct {
	Query string
	Hits  int
	At    time.Time
}
