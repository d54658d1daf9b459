package domain

type TopicStatus string

const (
	TopicStatusPreparing TopicStatus = "preparing"
	TopicStatusOngoing   TopicStatus = "ongoing"
	TopicStatusClosed    TopicStatus = "closed"
)

// Topic is owned by the topic catalog. The vote core only reads ID and Status.
type Topic struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	OptionA     string      `json:"option_a"`
	OptionATags string      `json:"option_a_tags,omitempty"`
	OptionB     string      `json:"option_b"`
	OptionBTags string      `json:"option_b_tags,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	Status      TopicStatus `json:"status"`
}

func (t *Topic) AcceptsVotes() bool {
	return t.Status == TopicStatusOngoing
}
