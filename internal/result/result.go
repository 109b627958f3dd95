// Package result holds the outcome of a match and its on-disk artifact.
package result

import (
	"encoding/json"
	"errors"
	"fmt"
)

// HouseName stands in as the second agent of single-agent games, such as
// blackjack against the dealer, so every artifact has two sides.
const HouseName = "house"

// ErrTooManyAgents is returned when encoding a result with more than two agents
var ErrTooManyAgents = errors.New("artifact records at most two agents")

// GameResult is the finalized outcome of one match. Names and Scores are
// indexed by seat.
type GameResult struct {
	Names    []string
	Scores   []float64
	EventLog []string
	Details  string
}

// artifact is the persisted JSON layout
type artifact struct {
	Agent0Name  string   `json:"agent_0_name"`
	Agent1Name  string   `json:"agent_1_name"`
	Agent0Score float64  `json:"agent_0_score"`
	Agent1Score float64  `json:"agent_1_score"`
	EventLog    []string `json:"event_log"`
	Details     *string  `json:"details"`
}

// MarshalJSON encodes the artifact form. A lone agent is paired with
// HouseName holding the complementary score.
func (r GameResult) MarshalJSON() ([]byte, error) {
	if len(r.Names) != len(r.Scores) {
		return nil, fmt.Errorf("result has %d names and %d scores", len(r.Names), len(r.Scores))
	}
	a := artifact{EventLog: r.EventLog}
	switch len(r.Names) {
	case 1:
		a.Agent0Name, a.Agent0Score = r.Names[0], r.Scores[0]
		a.Agent1Name, a.Agent1Score = HouseName, 1-r.Scores[0]
	case 2:
		a.Agent0Name, a.Agent0Score = r.Names[0], r.Scores[0]
		a.Agent1Name, a.Agent1Score = r.Names[1], r.Scores[1]
	default:
		return nil, fmt.Errorf("%d agents: %w", len(r.Names), ErrTooManyAgents)
	}
	if a.EventLog == nil {
		a.EventLog = []string{}
	}
	if r.Details != "" {
		details := r.Details
		a.Details = &details
	}
	return json.Marshal(a)
}

// UnmarshalJSON decodes the artifact form
func (r *GameResult) UnmarshalJSON(b []byte) error {
	var a artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*r = GameResult{
		Names:    []string{a.Agent0Name, a.Agent1Name},
		Scores:   []float64{a.Agent0Score, a.Agent1Score},
		EventLog: a.EventLog,
	}
	if a.Details != nil {
		r.Details = *a.Details
	}
	return nil
}
