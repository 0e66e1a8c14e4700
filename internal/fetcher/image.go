package fetcher

import (
	"log"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/satyanetra/trust_go_server/internal/analyzer"
)

// ImageFetcher 统计商品页的图片数量，作为图片校验的粗略输入
type ImageFetcher struct {
	client *http.Client
}

func NewImageFetcher() *ImageFetcher {
	return &ImageFetcher{client: newHTTPClient()}
}

func (f *ImageFetcher) Fetch(url string) analyzer.Signals {
	doc, err := loadDocument(f.client, url)
	if err != nil {
		log.Printf("Failed to fetch images for %s: %v", url, err)
		return analyzer.Signals{}
	}
	return parseImageSignals(doc)
}

func parseImageSignals(doc *goquery.Document) analyzer.Signals {
	total := doc.Find("img").Length()
	if total == 0 {
		return analyzer.Signals{}
	}
	// 还没接入篡改检测，先认为全部可验证
	return analyzer.Signals{
		"totalImages":    total,
		"verifiedImages": total,
	}
}
