package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/satyanetra/trust_go_server/internal/model"
	"github.com/satyanetra/trust_go_server/internal/model/dto"
	"github.com/satyanetra/trust_go_server/internal/pkg/ids"
	"github.com/satyanetra/trust_go_server/internal/pkg/queue"
	"github.com/satyanetra/trust_go_server/internal/repository"
)

// ErrInvalidURL 提交的商品链接无法解析或缺少 http(s) scheme
var ErrInvalidURL = errors.New("invalid product url")

// IngestService 接收商品提交，建档并投递分析任务
// 提交方不等待分析完成，拿到 jobId 即返回
type IngestService struct {
	productRepo *repository.ProductRepository
	jobRepo     *repository.JobRepository
	jobLogRepo  *repository.JobLogRepository
	jobQueue    *queue.Queue
}

// NewIngestService 创建提交服务
func NewIngestService(
	productRepo *repository.ProductRepository,
	jobRepo *repository.JobRepository,
	jobLogRepo *repository.JobLogRepository,
	jobQueue *queue.Queue,
) *IngestService {
	return &IngestService{
		productRepo: productRepo,
		jobRepo:     jobRepo,
		jobLogRepo:  jobLogRepo,
		jobQueue:    jobQueue,
	}
}

// Submit 校验链接、落库并入队，返回 productId 和 jobId
func (s *IngestService) Submit(ctx context.Context, rawURL, platform, clientKey string) (*dto.IngestResponse, error) {
	if !validProductURL(rawURL) {
		return nil, ErrInvalidURL
	}

	product := &model.Product{
		ID:   ids.ProductID(),
		URL:  rawURL,
		Name: "Product from " + platform,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	job := &model.AnalysisJob{
		ID:        ids.JobID(),
		ProductID: product.ID,
		Status:    model.JobStatusPending,
		Progress:  0,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := s.jobLogRepo.Append(job.ID, "Queued for analysis"); err != nil {
		log.Printf("Failed to append initial log for job %s: %v", job.ID, err)
	}

	msg := &queue.JobMessage{
		JobID:     job.ID,
		ProductID: product.ID,
		URL:       rawURL,
		Platform:  platform,
		ClientKey: clientKey,
	}
	if err := s.jobQueue.Push(ctx, msg); err != nil {
		// 入队失败的任务永远没人处理，直接置为 failed
		job.Status = model.JobStatusFailed
		if updErr := s.jobRepo.Update(job); updErr != nil {
			log.Printf("Failed to mark unqueued job %s as failed: %v", job.ID, updErr)
		}
		if logErr := s.jobLogRepo.Append(job.ID, "Analysis failed: could not enqueue job"); logErr != nil {
			log.Printf("Failed to append failure log for job %s: %v", job.ID, logErr)
		}
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	log.Printf("Queued job %s for product %s", job.ID, product.ID)
	return &dto.IngestResponse{
		ProductID: product.ID,
		JobID:     job.ID,
	}, nil
}

func validProductURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
