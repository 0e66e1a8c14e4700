package model

import (
	"time"
)

// 任务状态，状态机为 pending → processing → completed/failed
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

type AnalysisJob struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	ProductID   string     `gorm:"size:64;not null;index" json:"product_id"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"` // pending, processing, completed, failed
	Progress    int        `gorm:"default:0" json:"progress"`                   // 0-100
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (AnalysisJob) TableName() string {
	return "analysis_jobs"
}

// Terminal 任务是否已结束
func (j *AnalysisJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
