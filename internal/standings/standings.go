// Package standings summarizes a directory of match results per agent:
// wins, losses, draws, losses by forfeit and mean score.
package standings

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"

	"github.com/lox/cardbench/internal/result"
)

var forfeitPattern = regexp.MustCompile(`Agent (\d+) reached max error count`)

// Record is one agent's line in the standings
type Record struct {
	Name        string
	Games       int
	Wins        int
	Losses      int
	Draws       int
	ErrorLosses int // losses by exceeding the error budget
	Score       Score
}

// WinRate returns the fraction of games won
func (r *Record) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

// ErrorLossRate returns the fraction of games forfeited on errors
func (r *Record) ErrorLossRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.ErrorLosses) / float64(r.Games)
}

// forfeiter returns the seat named in a forfeit detail, or -1
func forfeiter(details string) int {
	m := forfeitPattern.FindStringSubmatch(details)
	if m == nil {
		return -1
	}
	seat, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return seat
}

// Compute builds standings from two-sided results, ordered by mean score
// and then name.
func Compute(results []result.GameResult) []*Record {
	byName := make(map[string]*Record)
	get := func(name string) *Record {
		r, ok := byName[name]
		if !ok {
			r = &Record{Name: name}
			byName[name] = r
		}
		return r
	}

	for _, res := range results {
		if len(res.Names) != 2 || len(res.Scores) != 2 {
			continue
		}
		a, b := get(res.Names[0]), get(res.Names[1])
		a.Games++
		b.Games++
		a.Score.Add(res.Scores[0])
		b.Score.Add(res.Scores[1])

		errSeat := forfeiter(res.Details)
		switch {
		case res.Scores[0] > res.Scores[1]:
			a.Wins++
			b.Losses++
			if errSeat == 1 {
				b.ErrorLosses++
			}
		case res.Scores[1] > res.Scores[0]:
			b.Wins++
			a.Losses++
			if errSeat == 0 {
				a.ErrorLosses++
			}
		default:
			a.Draws++
			b.Draws++
		}
	}

	records := make([]*Record, 0, len(byName))
	for _, r := range byName {
		records = append(records, r)
	}
	slices.SortFunc(records, func(x, y *Record) int {
		if c := cmp.Compare(y.Score.Mean(), x.Score.Mean()); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	return records
}
