// Package models holds rows shared between the store and its readers.
package models

import "time"

// PredictionOutcome is the aggregate count of one predicted label in one
// mode. Headline text is never stored.
type PredictionOutcome struct {
	Label      string
	Mode       string
	Count      int64
	LastSeenAt time.Time
}
