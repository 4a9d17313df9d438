package dna

import (
	"sort"

	"github.com/ob1-scout/ob1-scout/internal/feed"
)

// Match pairs an opportunity with its fit against a club.
type Match struct {
	Opportunity *feed.Opportunity `json:"opportunity"`
	Result      FitResult         `json:"result"`
}

// ScoreAll scores every opportunity against club and returns the non-blocked
// ones scoring at least minScore, best first. Ties keep feed order.
func ScoreAll(opps []*feed.Opportunity, club *ClubProfile, minScore int) ([]Match, error) {
	if club == nil {
		return nil, ErrNilClub
	}

	matches := make([]Match, 0, len(opps))
	for _, o := range opps {
		if o == nil {
			continue
		}
		res, err := Score(o, club)
		if err != nil {
			return nil, err
		}
		if res.Blocked || res.Score < minScore {
			continue
		}
		matches = append(matches, Match{Opportunity: o, Result: res})
	}

	SortMatches(matches)
	return matches, nil
}

// SortMatches orders matches by fit score, highest first.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Score > matches[j].Result.Score
	})
}

// TopMatches keeps the best match per player, drops those under minScore and
// returns at most limit entries. A non-positive limit keeps everything.
func TopMatches(matches []Match, minScore, limit int) []Match {
	best := make(map[string]int, len(matches))
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Result.Blocked || m.Result.Score < minScore {
			continue
		}
		if idx, ok := best[m.Opportunity.ID]; ok {
			if m.Result.Score > out[idx].Result.Score {
				out[idx] = m
			}
			continue
		}
		best[m.Opportunity.ID] = len(out)
		out = append(out, m)
	}

	SortMatches(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
