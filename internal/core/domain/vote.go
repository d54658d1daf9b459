package domain

import (
	"time"

	"github.com/google/uuid"
)

type Choice string

const (
	ChoiceA Choice = "A"
	ChoiceB Choice = "B"
)

func (c Choice) Valid() bool {
	return c == ChoiceA || c == ChoiceB
}

type Vote struct {
	ID      uuid.UUID     `json:"id"`
	TopicID int64         `json:"topic_id"`
	Choice  Choice        `json:"choice"`
	Region  string        `json:"region"`
	Voter   VoterIdentity `json:"voter_identity"`
	VotedAt time.Time     `json:"voted_at"`
}

// RegionCount is one (region, choice) group of current votes for a topic.
type RegionCount struct {
	Region string
	Choice Choice
	Count  int64
}
