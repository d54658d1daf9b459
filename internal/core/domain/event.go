package domain

type EventType string

const (
	EventVoteUpdate    EventType = "voteUpdate"
	EventResultsUpdate EventType = "resultsUpdate"
)

// Event is what the broadcast hub pushes to topic subscribers.
type Event struct {
	Type    EventType `json:"event"`
	TopicID int64     `json:"topic_id"`
	Region  string    `json:"region,omitempty"`
	Choice  Choice    `json:"choice,omitempty"`
	Results *Tally    `json:"results"`
}

func NewVoteUpdate(vote *Vote, results *Tally) Event {
	return Event{
		Type:    EventVoteUpdate,
		TopicID: vote.TopicID,
		Region:  vote.Region,
		Choice:  vote.Choice,
		Results: results,
	}
}

func NewResultsUpdate(topicID int64, results *Tally) Event {
	return Event{Type: EventResultsUpdate, TopicID: topicID, Results: results}
}
