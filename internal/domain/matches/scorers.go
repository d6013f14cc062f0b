package matches

import "sort"

const (
	MarkerPenalty = "pen"
	MarkerOwnGoal = "og"
)

// Scorer is one goal in a match, keyed by effective minute.
type Scorer struct {
	Minute int    `json:"minute"`
	Player string `json:"player"`
	Team   string `json:"team,omitempty"`
	Marker string `json:"marker,omitempty"`
}

// Scorers lists the goals of a match in ascending minute order. Goals in the same
// minute keep their event order.
func Scorers(m Match) []Scorer {
	out := make([]Scorer, 0, len(m.Events))
	for _, e := range m.Events {
		if !e.Type.Scoring() {
			continue
		}
		s := Scorer{Minute: e.Minute(), Player: e.Player, Team: e.Team}
		switch e.Type {
		case EventPenScored:
			s.Marker = MarkerPenalty
		case EventOwnGoal:
			s.Marker = MarkerOwnGoal
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minute < out[j].Minute
	})
	return out
}
