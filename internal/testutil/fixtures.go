package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
	"github.com/satyanetra/trust_go_server/internal/pkg/ids"
)

// TestProduct 创建测试商品
func TestProduct(t *testing.T, db *gorm.DB, opts ...func(*model.Product)) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:   ids.ProductID(),
		URL:  fmt.Sprintf("https://example.com/p/%d", time.Now().UnixNano()%100000),
		Name: "Product from amazon",
	}

	for _, opt := range opts {
		opt(product)
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return product
}

// WithURL 设置商品链接
func WithURL(url string) func(*model.Product) {
	return func(p *model.Product) {
		p.URL = url
	}
}

// WithName 设置商品名称
func WithName(name string) func(*model.Product) {
	return func(p *model.Product) {
		p.Name = name
	}
}

// TestJob 创建测试任务
func TestJob(t *testing.T, db *gorm.DB, productID string, opts ...func(*model.AnalysisJob)) *model.AnalysisJob {
	t.Helper()

	job := &model.AnalysisJob{
		ID:        ids.JobID(),
		ProductID: productID,
		Status:    model.JobStatusPending,
		Progress:  0,
	}

	for _, opt := range opts {
		opt(job)
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return job
}

// WithStatus 设置任务状态
func WithStatus(status string) func(*model.AnalysisJob) {
	return func(j *model.AnalysisJob) {
		j.Status = status
	}
}

// WithProgress 设置任务进度
func WithProgress(progress int) func(*model.AnalysisJob) {
	return func(j *model.AnalysisJob) {
		j.Progress = progress
	}
}

// TestJobLog 创建测试日志
func TestJobLog(t *testing.T, db *gorm.DB, jobID, message string) *model.JobLog {
	t.Helper()

	jobLog := &model.JobLog{
		JobID:     jobID,
		Message:   message,
		Timestamp: time.Now(),
	}

	if err := db.Create(jobLog).Error; err != nil {
		t.Fatalf("Failed to create test job log: %v", err)
	}

	return jobLog
}

// TestScore 创建测试评分
func TestScore(t *testing.T, db *gorm.DB, productID string, overall int, opts ...func(*model.Score)) *model.Score {
	t.Helper()

	score := &model.Score{
		ID:                ids.ScoreID(),
		ProductID:         productID,
		OverallScore:      overall,
		ReviewAnalysis:    `{"score":80,"sentiment":"Positive"}`,
		ImageVerification: `{"score":90}`,
		SellerCredibility: `{"score":78}`,
		ProductDetails:    `{"name":"Product"}`,
	}

	for _, opt := range opts {
		opt(score)
	}

	if err := db.Create(score).Error; err != nil {
		t.Fatalf("Failed to create test score: %v", err)
	}

	return score
}

// WithCreatedAt 设置评分创建时间
func WithCreatedAt(at time.Time) func(*model.Score) {
	return func(s *model.Score) {
		s.CreatedAt = at
	}
}
