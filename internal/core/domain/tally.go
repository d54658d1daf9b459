package domain

// ChoiceCounts holds per-choice counts for one region. A choice with no votes
// is omitted from the JSON form.
type ChoiceCounts struct {
	A int64 `json:"A,omitempty"`
	B int64 `json:"B,omitempty"`
}

func (c ChoiceCounts) Total() int64 { return c.A + c.B }

// Majority returns the leading choice, or false on a tie (including 0:0).
func (c ChoiceCounts) Majority() (Choice, bool) {
	switch {
	case c.A > c.B:
		return ChoiceA, true
	case c.B > c.A:
		return ChoiceB, true
	default:
		return "", false
	}
}

type TotalCounts struct {
	A          int64 `json:"A"`
	B          int64 `json:"B"`
	TotalVotes int64 `json:"total_votes"`
}

// Tally is derived from the ledger on demand and never stored. ByRegion is
// sparse: a region with no votes has no entry.
type Tally struct {
	ByRegion map[string]ChoiceCounts `json:"by_region"`
	Total    TotalCounts             `json:"total"`
}

func NewTally(counts []RegionCount) *Tally {
	t := &Tally{ByRegion: make(map[string]ChoiceCounts)}
	for _, c := range counts {
		if c.Count <= 0 || !c.Choice.Valid() {
			continue
		}
		region := t.ByRegion[c.Region]
		switch c.Choice {
		case ChoiceA:
			region.A += c.Count
			t.Total.A += c.Count
		case ChoiceB:
			region.B += c.Count
			t.Total.B += c.Count
		}
		t.ByRegion[c.Region] = region
		t.Total.TotalVotes += c.Count
	}
	return t
}
