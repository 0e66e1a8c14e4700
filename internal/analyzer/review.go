package analyzer

import (
	"math/rand"
)

// ReviewAnalyzer 评论可信度分析，当前为模型接入前的占位实现
type ReviewAnalyzer struct {
	rng *lockedRand
}

// NewReviewAnalyzer 传 nil 使用时间种子，测试传固定种子拿到确定输出
func NewReviewAnalyzer(rng *rand.Rand) *ReviewAnalyzer {
	return &ReviewAnalyzer{rng: newLockedRand(rng)}
}

func (a *ReviewAnalyzer) Analyze(productURL string) SubScore {
	score := a.rng.Intn(26) + 70            // 70-95
	authenticityRate := a.rng.Intn(16) + 80 // 80-95
	totalReviews := a.rng.Intn(451) + 50    // 50-500

	sentiment := "Mixed"
	if score > 75 {
		sentiment = "Positive"
	}

	return SubScore{
		Score: score,
		Details: map[string]interface{}{
			"sentiment":        sentiment,
			"authenticityRate": authenticityRate,
			"totalReviews":     totalReviews,
			"fakeReviews":      estimateFakeCount(totalReviews, authenticityRate),
			"summary":          "Mostly genuine reviews",
		},
	}
}

func (a *ReviewAnalyzer) AnalyzeWithSignals(productURL string, signals Signals) SubScore {
	return EnrichReview(a.Analyze(productURL), signals)
}

// EnrichReview 用抓取信号修正基础结果：
// scoreApprox 与基础分取平均，totalReviews 直接覆盖，fakeReviews 按最终值重算
func EnrichReview(base SubScore, signals Signals) SubScore {
	if approx, ok := signals.Int("scoreApprox"); ok && approx > 0 {
		base.Score = blendScore(base.Score, approx)
	}
	if total, ok := signals.Int("totalReviews"); ok && total > 0 {
		base.Details["totalReviews"] = total
		if rate, ok := asInt(base.Details["authenticityRate"]); ok {
			base.Details["fakeReviews"] = estimateFakeCount(total, rate)
		}
	}
	return base
}
