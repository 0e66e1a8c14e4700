package analyzer

import (
	"fmt"
	"math"
)

// 聚合权重：评论 0.5、图片 0.3、卖家 0.2
const (
	reviewWeight = 0.5
	imageWeight  = 0.3
	sellerWeight = 0.2
)

// Combine 把三个子评分聚合成总分和说明文案
// 纯函数，四舍五入后夹到 [0,100]
func Combine(review, image, seller SubScore) (int, string) {
	weighted := reviewWeight*float64(review.Score) +
		imageWeight*float64(image.Score) +
		sellerWeight*float64(seller.Score)

	overall := int(math.Round(weighted))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	reason := fmt.Sprintf("Overall Trust %d%% – authentic reviews & clean visuals", overall)
	return overall, reason
}
