package model

import (
	"time"
)

// JobLog 任务日志，只追加不修改，按 timestamp 升序还原进度叙事
type JobLog struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	JobID     string    `gorm:"size:64;not null;index" json:"job_id"`
	Message   string    `gorm:"size:1024" json:"message"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (JobLog) TableName() string {
	return "job_logs"
}
