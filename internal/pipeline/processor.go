package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/config"
	"github.com/satyanetra/trust_go_server/internal/analyzer"
	"github.com/satyanetra/trust_go_server/internal/cache"
	"github.com/satyanetra/trust_go_server/internal/model"
	"github.com/satyanetra/trust_go_server/internal/notify"
	"github.com/satyanetra/trust_go_server/internal/pkg/ids"
	"github.com/satyanetra/trust_go_server/internal/pkg/pubsub"
	"github.com/satyanetra/trust_go_server/internal/pkg/queue"
)

// 各阶段检查点，进度值固定为 0/20/35/55/75/90/100
const (
	progressStart   = 0
	progressFetch   = 20
	progressReviews = 35
	progressImages  = 55
	progressSeller  = 75
	progressCombine = 90
	progressDone    = 100
)

const (
	msgStart   = "Starting analysis"
	msgFetch   = "Fetching product data"
	msgReviews = "Analyzing reviews"
	msgImages  = "Verifying images"
	msgSeller  = "Checking seller credibility"
	msgCombine = "Combining scores"
	msgDone    = "Analysis completed"
)

// SignalFetcher 页面信号抓取器，失败返回空信号
type SignalFetcher interface {
	Fetch(url string) analyzer.Signals
}

// DelayFunc 阶段间的停顿策略，测试注入 no-op
type DelayFunc func(ctx context.Context, d time.Duration) error

func defaultDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Deps 流水线的外部协作方，除三个分析器外均可为 nil
type Deps struct {
	Review analyzer.Analyzer
	Image  analyzer.Analyzer
	Seller analyzer.Analyzer

	ReviewFetcher SignalFetcher
	ImageFetcher  SignalFetcher
	SellerFetcher SignalFetcher

	Dispatcher notify.Dispatcher
	Publisher  *pubsub.Publisher
	ScoreCache *cache.ScoreCache
}

// Processor 任务处理器，驱动单个任务的状态机
// 状态机：pending → processing → completed/failed，每个检查点
// （状态+进度+一条日志）在同一个事务里落库
type Processor struct {
	db    *gorm.DB
	deps  Deps
	cfg   *config.Config
	delay DelayFunc
}

// NewProcessor 创建任务处理器
func NewProcessor(db *gorm.DB, deps Deps, cfg *config.Config) *Processor {
	return &Processor{
		db:    db,
		deps:  deps,
		cfg:   cfg,
		delay: defaultDelay,
	}
}

// SetDelay 替换停顿策略
func (p *Processor) SetDelay(delay DelayFunc) {
	p.delay = delay
}

// Process 处理一个分析任务
// 阶段内任何错误都会把任务置为 failed 并记录原因，不会留下半个 Score
func (p *Processor) Process(ctx context.Context, msg *queue.JobMessage) error {
	var job model.AnalysisJob
	if err := p.db.Where("id = ?", msg.JobID).First(&job).Error; err != nil {
		return fmt.Errorf("failed to get job %s: %w", msg.JobID, err)
	}

	// 终态任务不再触碰，重复投递只记日志
	if job.Terminal() {
		log.Printf("Job %s already %s, skipping", job.ID, job.Status)
		return nil
	}

	var product model.Product
	if err := p.db.Where("id = ?", msg.ProductID).First(&product).Error; err != nil {
		p.failJob(&job, fmt.Sprintf("Analysis failed: product %s not found", msg.ProductID))
		return fmt.Errorf("failed to get product %s: %w", msg.ProductID, err)
	}

	// 配置的超时作为任务级 deadline
	if p.cfg.Pipeline.DefaultTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.cfg.Pipeline.DefaultTimeoutSeconds)*time.Second)
		defer cancel()
	}

	if err := p.run(ctx, &job, &product); err != nil {
		message := "Analysis failed: " + err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			message = fmt.Sprintf("Analysis timed out after %ds", p.cfg.Pipeline.DefaultTimeoutSeconds)
		}
		p.failJob(&job, message)
		return err
	}

	return nil
}

func (p *Processor) run(ctx context.Context, job *model.AnalysisJob, product *model.Product) error {
	stageDelay := time.Duration(p.cfg.Pipeline.StageDelayMS) * time.Millisecond

	// Step 1: 进入 processing
	now := time.Now()
	job.StartedAt = &now
	if err := p.checkpoint(ctx, job, model.JobStatusProcessing, progressStart, msgStart); err != nil {
		return err
	}

	// Step 2: 抓取页面信号
	if err := p.checkpoint(ctx, job, model.JobStatusProcessing, progressFetch, msgFetch); err != nil {
		return err
	}
	reviewSignals := p.fetch(p.deps.ReviewFetcher, product.URL)
	imageSignals := p.fetch(p.deps.ImageFetcher, product.URL)
	sellerSignals := p.fetch(p.deps.SellerFetcher, product.URL)
	if err := p.delay(ctx, stageDelay*3/2); err != nil {
		return err
	}

	// Step 3: 评论分析
	if err := p.checkpoint(ctx, job, model.JobStatusProcessing, progressReviews, msgReviews); err != nil {
		return err
	}
	review := p.deps.Review.AnalyzeWithSignals(product.URL, reviewSignals)
	if err := p.delay(ctx, stageDelay); err != nil {
		return err
	}

	// Step 4: 图片校验
	if err := p.checkpoint(ctx, job, model.JobStatusProcessing, progressImages, msgImages); err != nil {
		return err
	}
	image := p.deps.Image.AnalyzeWithSignals(product.URL, imageSignals)
	if err := p.delay(ctx, stageDelay); err != nil {
		return err
	}

	// Step 5: 卖家信誉
	if err := p.checkpoint(ctx, job, model.JobStatusProcessing, progressSeller, msgSeller); err != nil {
		return err
	}
	seller := p.deps.Seller.AnalyzeWithSignals(product.URL, sellerSignals)
	if err := p.delay(ctx, stageDelay); err != nil {
		return err
	}

	// Step 6: 聚合
	if err := p.checkpoint(ctx, job, model.JobStatusProcessing, progressCombine, msgCombine); err != nil {
		return err
	}
	overall, reason := analyzer.Combine(review, image, seller)
	if err := p.delay(ctx, stageDelay/2); err != nil {
		return err
	}

	// Step 7: Score 落库与 completed 在同一个事务
	if err := p.complete(ctx, job, product, overall, review, image, seller); err != nil {
		return err
	}

	// Step 8: 完成通知，异步且不影响任务状态
	if p.deps.ScoreCache != nil {
		p.deps.ScoreCache.Invalidate(context.Background(), product.ID)
	}
	if p.deps.Dispatcher != nil {
		p.deps.Dispatcher.AnalysisComplete(product.ID, overall, reason)
	}

	log.Printf("Job %s completed for product %s with score %d", job.ID, product.ID, overall)
	return nil
}

// checkpoint 原子写入状态+进度+一条日志，随后推送进度事件
func (p *Processor) checkpoint(ctx context.Context, job *model.AnalysisJob, status string, progress int, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		job.Status = status
		job.Progress = progress
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return tx.Create(&model.JobLog{
			JobID:     job.ID,
			Message:   message,
			Timestamp: time.Now(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("checkpoint %d failed: %w", progress, err)
	}

	p.publishProgress(job, status, progress, message, "")
	return nil
}

// complete Score 写入、completed 状态和最终日志必须同生共死
func (p *Processor) complete(ctx context.Context, job *model.AnalysisJob, product *model.Product,
	overall int, review, image, seller analyzer.SubScore) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := product.Name
	if name == "" {
		name = "Product"
	}
	details := map[string]interface{}{
		"name":       name,
		"url":        product.URL,
		"analyzedAt": time.Now().UnixMilli(),
	}

	reviewJSON, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to serialize review analysis: %w", err)
	}
	imageJSON, err := json.Marshal(image)
	if err != nil {
		return fmt.Errorf("failed to serialize image verification: %w", err)
	}
	sellerJSON, err := json.Marshal(seller)
	if err != nil {
		return fmt.Errorf("failed to serialize seller credibility: %w", err)
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to serialize product details: %w", err)
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		score := &model.Score{
			ID:                ids.ScoreID(),
			ProductID:         product.ID,
			OverallScore:      overall,
			ReviewAnalysis:    string(reviewJSON),
			ImageVerification: string(imageJSON),
			SellerCredibility: string(sellerJSON),
			ProductDetails:    string(detailsJSON),
		}
		if err := tx.Create(score).Error; err != nil {
			return err
		}

		now := time.Now()
		job.Status = model.JobStatusCompleted
		job.Progress = progressDone
		job.CompletedAt = &now
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return tx.Create(&model.JobLog{
			JobID:     job.ID,
			Message:   msgDone,
			Timestamp: now,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to persist score: %w", err)
	}

	p.publishProgress(job, model.JobStatusCompleted, progressDone, msgDone, "")
	return nil
}

// failJob 终态写入不走被取消的 ctx，保证失败原因一定落库
func (p *Processor) failJob(job *model.AnalysisJob, message string) {
	err := p.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		job.Status = model.JobStatusFailed
		job.CompletedAt = &now
		if err := tx.Save(job).Error; err != nil {
			return err
		}
		return tx.Create(&model.JobLog{
			JobID:     job.ID,
			Message:   message,
			Timestamp: now,
		}).Error
	})
	if err != nil {
		log.Printf("Failed to mark job %s as failed: %v", job.ID, err)
		return
	}

	p.publishProgress(job, model.JobStatusFailed, job.Progress, message, message)
	log.Printf("Job %s failed: %s", job.ID, message)
}

func (p *Processor) fetch(f SignalFetcher, url string) analyzer.Signals {
	if f == nil || !p.cfg.Pipeline.FetchEnabled {
		return nil
	}
	return f.Fetch(url)
}

func (p *Processor) publishProgress(job *model.AnalysisJob, status string, progress int, message, errMsg string) {
	if p.deps.Publisher == nil {
		return
	}
	err := p.deps.Publisher.PublishProgress(context.Background(), &pubsub.ProgressMessage{
		JobID:     job.ID,
		ProductID: job.ProductID,
		Status:    status,
		Progress:  progress,
		Message:   message,
		Error:     errMsg,
	})
	if err != nil {
		log.Printf("Failed to publish progress for job %s: %v", job.ID, err)
	}
}
