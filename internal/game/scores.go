package game

// WinnerScores gives winner 1 and everyone else 0
func WinnerScores(agents []AgentID, winner AgentID) map[AgentID]float64 {
	scores := make(map[AgentID]float64, len(agents))
	for _, id := range agents {
		scores[id] = 0
	}
	scores[winner] = 1
	return scores
}

// DrawScores splits a single point evenly (0.5 each between two agents)
func DrawScores(agents []AgentID) map[AgentID]float64 {
	scores := make(map[AgentID]float64, len(agents))
	for _, id := range agents {
		scores[id] = 1 / float64(len(agents))
	}
	return scores
}

// ForfeitScores gives offender 0 and splits the point among the others. A
// lone agent that forfeits simply scores 0.
func ForfeitScores(agents []AgentID, offender AgentID) map[AgentID]float64 {
	scores := make(map[AgentID]float64, len(agents))
	others := len(agents) - 1
	for _, id := range agents {
		switch {
		case id == offender:
			scores[id] = 0
		default:
			scores[id] = 1 / float64(others)
		}
	}
	return scores
}
