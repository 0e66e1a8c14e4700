package fetcher

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/satyanetra/trust_go_server/internal/analyzer"
)

// SellerFetcher 从商品页抓卖家名称和评分百分比
type SellerFetcher struct {
	client *http.Client
}

func NewSellerFetcher() *SellerFetcher {
	return &SellerFetcher{client: newHTTPClient()}
}

func (f *SellerFetcher) Fetch(url string) analyzer.Signals {
	doc, err := loadDocument(f.client, url)
	if err != nil {
		log.Printf("Failed to fetch seller for %s: %v", url, err)
		return analyzer.Signals{}
	}
	return parseSellerSignals(doc)
}

func parseSellerSignals(doc *goquery.Document) analyzer.Signals {
	signals := analyzer.Signals{}

	seller := firstNonEmptyText(doc, "#sellerProfileTriggerId, a[href*=seller]")
	if seller == "" {
		seller = "Unknown"
	}

	ratingText := firstNonEmptyText(doc, "span.a-icon-alt")
	ratingOutOf5 := parseDecimal(ratingText)
	ratingPercent := 0
	if ratingOutOf5 > 0 {
		ratingPercent = int(math.Round(ratingOutOf5 / 5.0 * 100))
	}

	signals["sellerName"] = seller
	if ratingPercent > 0 {
		signals["ratingPercent"] = ratingPercent
		// 评分 90% 以上暂按认证卖家处理
		signals["verifiedSeller"] = ratingPercent >= 90
	}
	return signals
}

func firstNonEmptyText(doc *goquery.Document, selector string) string {
	text := ""
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.TrimSpace(s.Text())
		if t != "" {
			text = t
			return false
		}
		return true
	})
	return text
}
