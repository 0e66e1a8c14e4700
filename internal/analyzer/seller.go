package analyzer

import (
	"math/rand"
)

// SellerAnalyzer 卖家信誉评估，当前为模型接入前的占位实现
type SellerAnalyzer struct {
	rng *lockedRand
}

func NewSellerAnalyzer(rng *rand.Rand) *SellerAnalyzer {
	return &SellerAnalyzer{rng: newLockedRand(rng)}
}

func (a *SellerAnalyzer) Analyze(productURL string) SubScore {
	return SubScore{
		Score: 78,
		Details: map[string]interface{}{
			"rating": "Good",
			"historicalData": map[string]interface{}{
				"totalSales":      1250,
				"positiveReviews": 1100,
			},
			"summary": "88% positive feedback",
		},
	}
}

func (a *SellerAnalyzer) AnalyzeWithSignals(productURL string, signals Signals) SubScore {
	return EnrichSeller(a.Analyze(productURL), signals)
}

// EnrichSeller 抓到评分百分比则与基础分取平均，卖家名和认证标记原样带入
func EnrichSeller(base SubScore, signals Signals) SubScore {
	if percent, ok := signals.Int("ratingPercent"); ok && percent > 0 {
		base.Score = blendScore(base.Score, percent)
	}
	if name, ok := signals.String("sellerName"); ok && name != "" {
		base.Details["sellerName"] = name
	}
	if verified, ok := signals.Bool("verifiedSeller"); ok {
		base.Details["verifiedSeller"] = verified
	}
	return base
}
