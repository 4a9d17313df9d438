package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ob1-scout/ob1-scout/internal/feed"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
)

type stubClassifier struct {
	result *Classification
	err    error
	calls  int
}

func (s *stubClassifier) Classify(context.Context, string) (*Classification, error) {
	s.calls++
	return s.result, s.err
}

func TestToQuery(t *testing.T) {
	t.Parallel()

	c := &Classification{
		Intent: IntentTalentSearch,
		Filters: ClassifiedFilters{
			Role:     "terzino destro",
			Position: "TD",
			Type:     "svincolato",
			Age:      "under 23",
		},
		Confidence:  1.4,
		Explanation: " terzino giovane ",
	}

	q := c.ToQuery()
	assert.Equal(t, nlp.IntentFullList, q.Intent)
	assert.Equal(t, nlp.FamilyFullBack, q.Filters.Role)
	assert.Equal(t, []feed.Role{feed.RoleRightBack}, q.Filters.Roles)
	assert.Equal(t, feed.AvailabilityFreeAgent, q.Filters.Availability)
	assert.Equal(t, 23, q.Filters.AgeMax)
	assert.Zero(t, q.Filters.AgeMin)
	assert.Equal(t, 1.0, q.Confidence)
	assert.Equal(t, "terzino giovane", q.Interpretation)
}

func TestToQueryIntents(t *testing.T) {
	t.Parallel()

	tests := map[Intent]nlp.Intent{
		IntentListOpportunities: nlp.IntentFullList,
		IntentStats:             nlp.IntentStats,
		IntentHelp:              nlp.IntentHelp,
		IntentGreeting:          nlp.IntentHelp,
		IntentUnknown:           nlp.IntentUnrecognized,
		"STATS":                 nlp.IntentStats,
		"weather":               nlp.IntentUnrecognized,
	}

	for in, want := range tests {
		got := (&Classification{Intent: in, Filters: ClassifiedFilters{Position: "centrocampista", Age: "over 30"}}).ToQuery()
		assert.Equal(t, want, got.Intent, "intent %s", in)
		assert.Empty(t, got.Filters.Roles, "free text is not a position code")
		assert.Equal(t, 30, got.Filters.AgeMin)
	}
}

func TestReclassify(t *testing.T) {
	t.Parallel()

	uncertain := nlp.ParsedQuery{Intent: nlp.IntentUnrecognized, Confidence: 0.4}
	confident := &Classification{Intent: IntentStats, Confidence: 0.8}

	t.Run("replaces uncertain parse", func(t *testing.T) {
		t.Parallel()

		core, logs := observer.New(zapcore.InfoLevel)
		stub := &stubClassifier{result: confident}

		got := Reclassify(context.Background(), stub, "numeri?", uncertain, DefaultThresholds(), zap.New(core))
		assert.Equal(t, nlp.IntentStats, got.Intent)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, 1, logs.FilterMessage("query reclassified").Len())
	})

	t.Run("skips reliable parses", func(t *testing.T) {
		t.Parallel()

		stub := &stubClassifier{result: confident}
		reliable := nlp.ParsedQuery{Intent: nlp.IntentFullList, Confidence: 0.5}

		assert.Equal(t, reliable, Reclassify(context.Background(), stub, "x", reliable, DefaultThresholds(), nil))
		assert.Equal(t, uncertain, Reclassify(context.Background(), nil, "x", uncertain, DefaultThresholds(), nil))
		assert.Zero(t, stub.calls)
	})

	t.Run("asks about fallback guesses and failures", func(t *testing.T) {
		t.Parallel()

		guess := nlp.Parse("boh")
		failed := nlp.Parse("vorrei un parere sulla prossima sessione estiva per favore")
		assert.True(t, guess.Fallback)
		assert.Equal(t, nlp.IntentUnrecognized, failed.Intent)

		for _, parsed := range []nlp.ParsedQuery{guess, failed} {
			stub := &stubClassifier{result: confident}
			got := Reclassify(context.Background(), stub, "x", parsed, DefaultThresholds(), nil)
			assert.Equal(t, nlp.IntentStats, got.Intent)
			assert.Equal(t, 1, stub.calls)
		}
	})

	t.Run("keeps parse on error or weak answer", func(t *testing.T) {
		t.Parallel()

		core, logs := observer.New(zapcore.WarnLevel)
		broken := &stubClassifier{err: errors.New("quota")}
		assert.Equal(t, uncertain, Reclassify(context.Background(), broken, "x", uncertain, DefaultThresholds(), zap.New(core)))
		assert.Equal(t, 1, logs.FilterMessage("reclassification failed").Len())

		weak := &stubClassifier{result: &Classification{Intent: IntentStats, Confidence: 0.3}}
		assert.Equal(t, uncertain, Reclassify(context.Background(), weak, "x", uncertain, DefaultThresholds(), nil))

		unknown := &stubClassifier{result: &Classification{Intent: IntentUnknown, Confidence: 0.9}}
		assert.Equal(t, uncertain, Reclassify(context.Background(), unknown, "x", uncertain, DefaultThresholds(), nil))
	})
}
