package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(job *model.AnalysisJob) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) GetByID(id string) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) GetByProductID(productID string) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	err := r.db.Where("product_id = ?", productID).Order("created_at DESC").First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(job *model.AnalysisJob) error {
	return r.db.Save(job).Error
}

// ListTerminalBefore 获取某时间点之前结束的任务，供离线清理使用
func (r *JobRepository) ListTerminalBefore(cutoff time.Time, limit int) ([]*model.AnalysisJob, error) {
	var jobs []*model.AnalysisJob
	err := r.db.Where("status IN ? AND created_at < ?",
		[]string{model.JobStatusCompleted, model.JobStatusFailed}, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}
