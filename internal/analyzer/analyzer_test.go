package analyzer

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewAnalyzer_Analyze_Bounds(t *testing.T) {
	a := NewReviewAnalyzer(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		result := a.Analyze("https://example.com/p/1")

		assert.GreaterOrEqual(t, result.Score, 70)
		assert.LessOrEqual(t, result.Score, 95)

		rate := result.Details["authenticityRate"].(int)
		assert.GreaterOrEqual(t, rate, 80)
		assert.LessOrEqual(t, rate, 95)

		if result.Score > 75 {
			assert.Equal(t, "Positive", result.Details["sentiment"])
		} else {
			assert.Equal(t, "Mixed", result.Details["sentiment"])
		}
	}
}

func TestReviewAnalyzer_Analyze_Deterministic(t *testing.T) {
	a1 := NewReviewAnalyzer(rand.New(rand.NewSource(42)))
	a2 := NewReviewAnalyzer(rand.New(rand.NewSource(42)))

	assert.Equal(t, a1.Analyze("u"), a2.Analyze("u"))
}

func TestEnrichReview_BlendsApproxScore(t *testing.T) {
	base := SubScore{Score: 80, Details: map[string]interface{}{"authenticityRate": 90}}

	enriched := EnrichReview(base, Signals{"scoreApprox": 60})

	// (80+60)/2 = 70
	assert.Equal(t, 70, enriched.Score)
}

func TestEnrichReview_OverridesTotalAndRecomputesFakes(t *testing.T) {
	base := SubScore{Score: 80, Details: map[string]interface{}{
		"authenticityRate": 90,
		"totalReviews":     100,
		"fakeReviews":      10,
	}}

	enriched := EnrichReview(base, Signals{"totalReviews": 200})

	assert.Equal(t, 200, enriched.Details["totalReviews"])
	// 200 × (100−90) / 100 = 20
	assert.Equal(t, 20, enriched.Details["fakeReviews"])
}

func TestEnrichReview_UnknownFieldsAreNoOps(t *testing.T) {
	base := SubScore{Score: 80, Details: map[string]interface{}{"authenticityRate": 90}}

	enriched := EnrichReview(base, Signals{"somethingElse": 5})
	assert.Equal(t, 80, enriched.Score)

	enriched = EnrichReview(base, nil)
	assert.Equal(t, 80, enriched.Score)
}

func TestImageAnalyzer_Analyze_Bounds(t *testing.T) {
	a := NewImageAnalyzer(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		result := a.Analyze("u")

		assert.GreaterOrEqual(t, result.Score, 85)
		assert.LessOrEqual(t, result.Score, 95)
		assert.Equal(t, false, result.Details["manipulationDetected"])
		assert.Equal(t, result.Details["totalImages"], result.Details["verifiedImages"])
	}
}

func TestEnrichImage_OverridesCounts(t *testing.T) {
	base := SubScore{Score: 90, Details: map[string]interface{}{
		"totalImages":    10,
		"verifiedImages": 10,
	}}

	enriched := EnrichImage(base, Signals{"totalImages": 33, "verifiedImages": 30})

	assert.Equal(t, 90, enriched.Score)
	assert.Equal(t, 33, enriched.Details["totalImages"])
	assert.Equal(t, 30, enriched.Details["verifiedImages"])
}

func TestSellerAnalyzer_Analyze_Fixed(t *testing.T) {
	a := NewSellerAnalyzer(nil)

	result := a.Analyze("u")

	assert.Equal(t, 78, result.Score)
	assert.Equal(t, "Good", result.Details["rating"])
}

func TestEnrichSeller_BlendsRatingPercent(t *testing.T) {
	a := NewSellerAnalyzer(nil)

	result := a.AnalyzeWithSignals("u", Signals{
		"ratingPercent":  90,
		"sellerName":     "ACME Store",
		"verifiedSeller": true,
	})

	// (78+90)/2 = 84
	assert.Equal(t, 84, result.Score)
	assert.Equal(t, "ACME Store", result.Details["sellerName"])
	assert.Equal(t, true, result.Details["verifiedSeller"])
}

func TestCombine_WeightedFormula(t *testing.T) {
	overall, reason := Combine(
		SubScore{Score: 80},
		SubScore{Score: 90},
		SubScore{Score: 70},
	)

	// round(0.5×80 + 0.3×90 + 0.2×70) = round(81) = 81
	assert.Equal(t, 81, overall)
	assert.Equal(t, "Overall Trust 81% – authentic reviews & clean visuals", reason)
}

func TestCombine_ClampsOutOfRangeInputs(t *testing.T) {
	overall, _ := Combine(SubScore{Score: 150}, SubScore{Score: 150}, SubScore{Score: 150})
	assert.Equal(t, 100, overall)

	overall, _ = Combine(SubScore{Score: -10}, SubScore{Score: -10}, SubScore{Score: -10})
	assert.Equal(t, 0, overall)
}

func TestSubScore_JSONRoundTrip(t *testing.T) {
	s := SubScore{Score: 82, Details: map[string]interface{}{
		"sentiment": "Positive",
	}}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":82,"sentiment":"Positive"}`, string(data))

	var decoded SubScore
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 82, decoded.Score)
	assert.Equal(t, "Positive", decoded.Details["sentiment"])
}

func TestSignals_IntHandlesJSONNumbers(t *testing.T) {
	s := Signals{"a": 3, "b": float64(4), "c": "x"}

	v, ok := s.Int("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = s.Int("b")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = s.Int("c")
	assert.False(t, ok)

	_, ok = s.Int("missing")
	assert.False(t, ok)
}
