package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/satyanetra/trust_go_server/config"
)

// Dispatcher 分析完成后的外部通知，必须异步且不影响任务状态
type Dispatcher interface {
	AnalysisComplete(productID string, overallScore int, reason string)
}

// Sender 实际投递策略，默认单次 HTTP POST，不重试
// 需要重试/退避时换一个实现即可，流水线对投递结果无感
type Sender interface {
	Send(url string, payload []byte) error
}

type httpSender struct {
	client *http.Client
}

func (s *httpSender) Send(url string, payload []byte) error {
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// WebhookDispatcher 把完成事件 POST 到配置的 webhook 地址
type WebhookDispatcher struct {
	sender  Sender
	url     string
	enabled bool
	now     func() time.Time
}

type completePayload struct {
	ProductID    string `json:"productId"`
	OverallScore int    `json:"overallScore"`
	Reason       string `json:"reason"`
	Timestamp    string `json:"timestamp"`
}

func NewWebhookDispatcher(cfg *config.WebhookConfig) *WebhookDispatcher {
	d := &WebhookDispatcher{
		sender:  &httpSender{client: &http.Client{Timeout: 10 * time.Second}},
		url:     cfg.URL,
		enabled: cfg.Enabled,
		now:     time.Now,
	}
	if !d.enabled || d.url == "" {
		log.Println("Webhook notifications disabled (no url or disabled by config)")
	}
	return d
}

// NewWebhookDispatcherWithSender 注入投递策略，测试或替换重试实现用
func NewWebhookDispatcherWithSender(cfg *config.WebhookConfig, sender Sender) *WebhookDispatcher {
	d := NewWebhookDispatcher(cfg)
	d.sender = sender
	return d
}

// AnalysisComplete 异步发送完成通知，任何失败只记日志
func (d *WebhookDispatcher) AnalysisComplete(productID string, overallScore int, reason string) {
	if !d.enabled || d.url == "" {
		log.Printf("Webhook skipped for product %s (disabled)", productID)
		return
	}

	go func() {
		if err := d.send(productID, overallScore, reason); err != nil {
			log.Printf("Failed to send webhook for product %s: %v", productID, err)
			return
		}
		log.Printf("Webhook sent for product %s with score %d", productID, overallScore)
	}()
}

func (d *WebhookDispatcher) send(productID string, overallScore int, reason string) error {
	payload, err := json.Marshal(completePayload{
		ProductID:    productID,
		OverallScore: overallScore,
		Reason:       reason,
		Timestamp:    d.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return d.sender.Send(d.url, payload)
}
