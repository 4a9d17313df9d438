package watch

import (
	"fmt"
	"sort"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
)

const (
	DefaultImmediateMinScore = 60
	DefaultDigestMinScore    = 40
)

// Matches reports whether an active profile accepts o.
func Matches(o *feed.Opportunity, p *Profile) bool {
	if p == nil || !p.Active {
		return false
	}
	return p.Criteria().Matches(o)
}

type ProfileMatch struct {
	Opportunity *feed.Opportunity
	Profiles    []*Profile
}

// FilterByProfiles returns the opportunities matched by at least one profile,
// highest ob1_score first.
func FilterByProfiles(opps []*feed.Opportunity, profiles []*Profile) []ProfileMatch {
	var out []ProfileMatch
	for _, o := range opps {
		var matched []*Profile
		for _, p := range profiles {
			if Matches(o, p) {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			out = append(out, ProfileMatch{Opportunity: o, Profiles: matched})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Opportunity.OB1Score > out[j].Opportunity.OB1Score
	})
	return out
}

func selectProfiles(profiles []*Profile, keep func(*Profile) bool) []*Profile {
	var out []*Profile
	for _, p := range profiles {
		if p != nil && p.Active && keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchAny(opps []*feed.Opportunity, profiles []*Profile) []*feed.Opportunity {
	if len(profiles) == 0 {
		return nil
	}
	var out []*feed.Opportunity
	for _, o := range opps {
		for _, p := range profiles {
			if Matches(o, p) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// ImmediateAlerts returns the opportunities matched by profiles that alert immediately.
func ImmediateAlerts(opps []*feed.Opportunity, profiles []*Profile) []*feed.Opportunity {
	return matchAny(opps, selectProfiles(profiles, func(p *Profile) bool { return p.AlertImmediately }))
}

// DigestOpportunities returns the opportunities matched by profiles included in the digest.
func DigestOpportunities(opps []*feed.Opportunity, profiles []*Profile) []*feed.Opportunity {
	return matchAny(opps, selectProfiles(profiles, func(p *Profile) bool { return p.IncludeInDigest }))
}

// DNAMatch is an opportunity scored against the club profile derived from the
// watch profile that matched it.
type DNAMatch struct {
	Opportunity *feed.Opportunity `json:"opportunity"`
	Result      dna.FitResult     `json:"result"`
	Profile     *Profile          `json:"profile"`
}

// FilterByProfilesDNA pre-filters with each active profile, scores survivors
// against ClubProfile(profile) and keeps, per player, the best positive
// score. Results are ordered by fit score, highest first.
func FilterByProfilesDNA(opps []*feed.Opportunity, profiles []*Profile) ([]DNAMatch, error) {
	best := make(map[string]int)
	var out []DNAMatch

	for _, p := range profiles {
		if p == nil || !p.Active {
			continue
		}
		club := ClubProfile(p)

		for _, o := range opps {
			if !Matches(o, p) {
				continue
			}
			res, err := dna.Score(o, club)
			if err != nil {
				return nil, fmt.Errorf("scoring %s for profile %s: %w", o.ID, p.ID, err)
			}
			if res.Blocked || res.Score <= 0 {
				continue
			}

			m := DNAMatch{Opportunity: o, Result: res, Profile: p}
			if idx, ok := best[o.ID]; ok {
				if res.Score > out[idx].Result.Score {
					out[idx] = m
				}
				continue
			}
			best[o.ID] = len(out)
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Score > out[j].Result.Score
	})
	return out, nil
}

func filterDNA(opps []*feed.Opportunity, profiles []*Profile, minScore int) ([]DNAMatch, error) {
	if len(profiles) == 0 {
		return nil, nil
	}
	matches, err := FilterByProfilesDNA(opps, profiles)
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		if m.Result.Score >= minScore {
			out = append(out, m)
		}
	}
	return out, nil
}

// ImmediateAlertsDNA scores immediate-alert profiles and keeps fits of at least minScore.
func ImmediateAlertsDNA(opps []*feed.Opportunity, profiles []*Profile, minScore int) ([]DNAMatch, error) {
	return filterDNA(opps, selectProfiles(profiles, func(p *Profile) bool { return p.AlertImmediately }), minScore)
}

// DigestOpportunitiesDNA scores digest profiles and keeps fits of at least minScore.
func DigestOpportunitiesDNA(opps []*feed.Opportunity, profiles []*Profile, minScore int) ([]DNAMatch, error) {
	return filterDNA(opps, selectProfiles(profiles, func(p *Profile) bool { return p.IncludeInDigest }), minScore)
}
