package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/watch"
)

var availabilityLabels = map[feed.Availability]string{
	feed.AvailabilityFreeAgent:         "svincolato",
	feed.AvailabilityMutualTermination: "rescissione",
	feed.AvailabilityLoan:              "prestito",
	feed.AvailabilityContractExpiring:  "scadenza",
	feed.AvailabilityUnavailable:       "non disponibile",
}

func describeOpportunity(o *feed.Opportunity) string {
	parts := []string{o.PlayerName, o.RoleLabel()}
	if age, ok := o.AgeYears(); ok {
		parts = append(parts, fmt.Sprintf("%d anni", age))
	}
	if label, ok := availabilityLabels[o.Availability()]; ok {
		parts = append(parts, label)
	} else if o.OpportunityType != "" {
		parts = append(parts, o.OpportunityType)
	}
	if o.CurrentClub != "" {
		parts = append(parts, o.CurrentClub)
	}
	return strings.Join(nonEmpty(parts), " | ")
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func printOpportunities(w io.Writer, v *feed.Opportunities) {
	if v.Len() == 0 {
		fmt.Fprintln(w, "Nessuna opportunità trovata.")
		return
	}
	for i, o := range v.Items {
		fmt.Fprintf(w, "%2d. [%s %d] %s\n", i+1, o.Tier(), o.OB1Score, describeOpportunity(o))
	}
}

func printMatches(w io.Writer, club *dna.ClubProfile, matches []dna.Match) {
	if len(matches) == 0 {
		fmt.Fprintf(w, "Nessun giocatore compatibile con %s.\n", club.Name)
		return
	}
	fmt.Fprintf(w, "DNA match per %s:\n", club.Name)
	for i, m := range matches {
		fmt.Fprintf(w, "%2d. [%s %d] %s\n    %s\n",
			i+1, dna.Classify(m.Result.Score), m.Result.Score, describeOpportunity(m.Opportunity), m.Result.Breakdown)
	}
}

func printAlerts(w io.Writer, mode watch.Mode, matches []watch.DNAMatch) {
	if len(matches) == 0 {
		fmt.Fprintf(w, "Nessun nuovo alert (%s).\n", mode)
		return
	}
	for i, m := range matches {
		fmt.Fprintf(w, "%2d. [%s] %d %s\n", i+1, m.Profile.Name, m.Result.Score, describeOpportunity(m.Opportunity))
	}
}

func printStats(w io.Writer, s feed.Stats) {
	fmt.Fprintf(w, "Opportunità: %d (hot %d, warm %d, cold %d)\n", s.Total, s.Hot, s.Warm, s.Cold)
	if s.LastUpdate != "" {
		fmt.Fprintf(w, "Ultimo aggiornamento: %s\n", s.LastUpdate)
	}
}
