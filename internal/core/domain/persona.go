package domain

import "math"

// PersonaWindow is how many of a voter's most recent topics are compared
// against their region's majority.
const PersonaWindow = 5

type UserStats struct {
	TotalVotes  int    `json:"total_votes"`
	MatchRate   int    `json:"match_rate"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Persona struct {
	Title       string
	Description string
}

// PersonaRule matches on (totalVotes, matchRate).
type PersonaRule struct {
	Match   func(totalVotes, matchRate int) bool
	Persona Persona
}

// PersonaTable is evaluated in order; the first matching rule wins and
// Fallback applies when none match.
type PersonaTable struct {
	Rules    []PersonaRule
	Fallback Persona
}

func (t PersonaTable) Assign(totalVotes, matchRate int) Persona {
	for _, rule := range t.Rules {
		if rule.Match(totalVotes, matchRate) {
			return rule.Persona
		}
	}
	return t.Fallback
}

var DefaultPersonaTable = PersonaTable{
	Rules: []PersonaRule{
		{
			Match:   func(total, _ int) bool { return total < 3 },
			Persona: Persona{Title: "Newcomer", Description: "Just getting started. Cast a few more votes to reveal your persona."},
		},
		{
			Match:   func(total, _ int) bool { return total >= 50 },
			Persona: Persona{Title: "Opinion Leader", Description: "A seasoned voter whose choices shape the map."},
		},
		{
			Match:   func(total, rate int) bool { return rate >= 90 && total >= 5 },
			Persona: Persona{Title: "Native", Description: "You think exactly like your neighbours."},
		},
		{
			Match:   func(total, rate int) bool { return rate <= 20 && total >= 5 },
			Persona: Persona{Title: "Rebel", Description: "You rarely side with your region's majority."},
		},
		{
			Match:   func(_, rate int) bool { return rate >= 60 },
			Persona: Persona{Title: "Trend Follower", Description: "You usually agree with the people around you."},
		},
	},
	Fallback: Persona{Title: "Citizen", Description: "Your opinions are balanced between the crowd and your own path."},
}

// MatchRate returns matches/comparisons as a rounded percentage in [0,100].
func MatchRate(matches, comparisons int) int {
	if comparisons <= 0 {
		return 0
	}
	if matches > comparisons {
		matches = comparisons
	}
	return int(math.Round(float64(matches) * 100 / float64(comparisons)))
}
