package analyzer

import (
	"math/rand"
)

// ImageAnalyzer 图片真实性校验，当前为模型接入前的占位实现
type ImageAnalyzer struct {
	rng *lockedRand
}

func NewImageAnalyzer(rng *rand.Rand) *ImageAnalyzer {
	return &ImageAnalyzer{rng: newLockedRand(rng)}
}

func (a *ImageAnalyzer) Analyze(productURL string) SubScore {
	score := a.rng.Intn(11) + 85      // 85-95
	confidence := a.rng.Intn(9) + 90  // 90-98
	totalImages := a.rng.Intn(16) + 5 // 5-20

	return SubScore{
		Score: score,
		Details: map[string]interface{}{
			"manipulationDetected": false,
			"confidence":           confidence,
			"totalImages":          totalImages,
			"verifiedImages":       totalImages,
			"summary":              "Images authentic",
		},
	}
}

func (a *ImageAnalyzer) AnalyzeWithSignals(productURL string, signals Signals) SubScore {
	return EnrichImage(a.Analyze(productURL), signals)
}

// EnrichImage 抓取到的图片数直接覆盖基础值
func EnrichImage(base SubScore, signals Signals) SubScore {
	if total, ok := signals.Int("totalImages"); ok && total > 0 {
		base.Details["totalImages"] = total
	}
	if verified, ok := signals.Int("verifiedImages"); ok && verified > 0 {
		base.Details["verifiedImages"] = verified
	}
	return base
}
