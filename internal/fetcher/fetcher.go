package fetcher

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// 页面抓取是尽力而为的增强输入：失败返回空信号，绝不让流水线因此中断

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var (
	digitsRe  = regexp.MustCompile(`[0-9][0-9,]*`)
	decimalRe = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// loadDocument 抓取并解析页面
func loadDocument(client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// parseNumber 提取文本里的第一个整数，如 "1,234 ratings" → 1234
func parseNumber(s string) int {
	m := digitsRe.FindString(s)
	if m == "" {
		return 0
	}
	clean := ""
	for _, r := range m {
		if r != ',' {
			clean += string(r)
		}
	}
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0
	}
	return n
}

// parseDecimal 提取文本里的第一个小数，如 "4.3 out of 5 stars" → 4.3
func parseDecimal(s string) float64 {
	m := decimalRe.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
