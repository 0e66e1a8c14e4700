package fetcher

import (
	"log"
	"math"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/satyanetra/trust_go_server/internal/analyzer"
)

// ReviewFetcher 从商品页抓评论总数和星级近似分
type ReviewFetcher struct {
	client *http.Client
}

func NewReviewFetcher() *ReviewFetcher {
	return &ReviewFetcher{client: newHTTPClient()}
}

func (f *ReviewFetcher) Fetch(url string) analyzer.Signals {
	doc, err := loadDocument(f.client, url)
	if err != nil {
		log.Printf("Failed to fetch reviews for %s: %v", url, err)
		return analyzer.Signals{}
	}
	return parseReviewSignals(doc)
}

func parseReviewSignals(doc *goquery.Document) analyzer.Signals {
	signals := analyzer.Signals{}

	// 常见的评论总数选择器（Amazon 布局）
	totalReviews := 0
	doc.Find("#acrCustomerReviewText, span[data-hook=total-review-count]").
		EachWithBreak(func(_ int, s *goquery.Selection) bool {
			totalReviews = parseNumber(s.Text())
			return totalReviews == 0
		})

	// 星级文本，如 "4.3 out of 5 stars"，换算成百分制近似分
	score := 0
	if text := doc.Find("span.a-icon-alt, i[data-hook=average-star-rating] span").First().Text(); text != "" {
		score = int(math.Round(parseDecimal(text) / 5.0 * 100))
	}

	if totalReviews > 0 {
		signals["totalReviews"] = totalReviews
	}
	if score > 0 {
		signals["scoreApprox"] = score
	}
	return signals
}
