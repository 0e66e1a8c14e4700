package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/satyanetra/trust_go_server/internal/model"
)

type JobLogRepository struct {
	db *gorm.DB
}

func NewJobLogRepository(db *gorm.DB) *JobLogRepository {
	return &JobLogRepository{db: db}
}

// Append 追加一条任务日志
func (r *JobLogRepository) Append(jobID, message string) error {
	return r.db.Create(&model.JobLog{
		JobID:     jobID,
		Message:   message,
		Timestamp: time.Now(),
	}).Error
}

// ListByJobID 按时间升序返回任务的全部日志
func (r *JobLogRepository) ListByJobID(jobID string) ([]*model.JobLog, error) {
	var logs []*model.JobLog
	err := r.db.Where("job_id = ?", jobID).Order("timestamp ASC, id ASC").Find(&logs).Error
	return logs, err
}

// DeleteByJobID 删除任务的全部日志，仅供离线清理工具使用
func (r *JobLogRepository) DeleteByJobID(jobID string) (int64, error) {
	result := r.db.Where("job_id = ?", jobID).Delete(&model.JobLog{})
	return result.RowsAffected, result.Error
}
