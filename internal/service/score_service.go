package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/cache"
	"github.com/satyanetra/trust_go_server/internal/model/dto"
	"github.com/satyanetra/trust_go_server/internal/repository"
)

var (
	// ErrJobNotFound 查询的任务不存在
	ErrJobNotFound = errors.New("job not found")
	// ErrScoreNotReady 商品还没有任何完成的分析结果
	ErrScoreNotReady = errors.New("analysis not ready")
)

// ScoreService 任务状态与评分结果的读取服务
type ScoreService struct {
	jobRepo    *repository.JobRepository
	jobLogRepo *repository.JobLogRepository
	scoreRepo  *repository.ScoreRepository
	scoreCache *cache.ScoreCache
}

// NewScoreService 创建评分查询服务
func NewScoreService(
	jobRepo *repository.JobRepository,
	jobLogRepo *repository.JobLogRepository,
	scoreRepo *repository.ScoreRepository,
	scoreCache *cache.ScoreCache,
) *ScoreService {
	return &ScoreService{
		jobRepo:    jobRepo,
		jobLogRepo: jobLogRepo,
		scoreRepo:  scoreRepo,
		scoreCache: scoreCache,
	}
}

// Status 查询任务的当前状态、进度和按时间升序的日志
func (s *ScoreService) Status(jobID string) (*dto.StatusResponse, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job %s: %w", jobID, err)
	}

	logs, err := s.jobLogRepo.ListByJobID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs for job %s: %w", jobID, err)
	}

	messages := make([]string, 0, len(logs))
	for _, l := range logs {
		messages = append(messages, l.Message)
	}

	return &dto.StatusResponse{
		Status:   job.Status,
		Progress: job.Progress,
		Logs:     messages,
	}, nil
}

// Score 返回商品最新的评分结果，同一商品多次分析取最近一次
// 结果会进缓存，新分析完成时由流水线主动失效
func (s *ScoreService) Score(ctx context.Context, productID string) (*dto.ScoreResponse, error) {
	if cached := s.scoreCache.Get(ctx, productID); cached != nil {
		return cached, nil
	}

	score, err := s.scoreRepo.GetLatestByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoreNotReady
		}
		return nil, fmt.Errorf("failed to get score for product %s: %w", productID, err)
	}

	resp := &dto.ScoreResponse{
		ProductID:         score.ProductID,
		OverallScore:      score.OverallScore,
		ReviewAnalysis:    json.RawMessage(score.ReviewAnalysis),
		ImageVerification: json.RawMessage(score.ImageVerification),
		SellerCredibility: json.RawMessage(score.SellerCredibility),
		Reasons:           buildReasons(score.OverallScore, score.ReviewAnalysis),
	}
	if score.ProductDetails != "" {
		resp.ProductDetails = json.RawMessage(score.ProductDetails)
	}

	s.scoreCache.Set(ctx, productID, resp)
	return resp, nil
}

// buildReasons 从评论分析 JSON 里取 sentiment 拼出结论说明
func buildReasons(overall int, reviewAnalysis string) []string {
	reason := fmt.Sprintf("Overall Trust %d%% – authentic reviews & clean visuals", overall)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(reviewAnalysis), &fields); err != nil {
		log.Printf("Failed to parse review analysis: %v", err)
		return []string{reason}
	}
	if sentiment, ok := fields["sentiment"].(string); ok && sentiment != "" {
		reason += ". Sentiment: " + sentiment
	}
	return []string{reason}
}
