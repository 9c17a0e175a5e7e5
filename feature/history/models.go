package history

import (
	"time"

	"gorm.io/datatypes"
)

// Run outcomes.
const (
	StatusCompleted = "completed"
	StatusAborted   = "aborted"
)

// TableName specifies the table name for CloneRun.
func (CloneRun) TableName() string {
	return "clone_runs"
}

// CloneRun is one recorded clone run.
type CloneRun struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RunID          string         `gorm:"uniqueIndex;size:36" json:"run_id"`
	Kind           string         `gorm:"size:16;index" json:"kind"`
	Source         string         `gorm:"size:255" json:"source"`
	NewName        string         `gorm:"size:255;index" json:"new_name"`
	Output         string         `gorm:"size:1024" json:"output"`
	Status         string         `gorm:"size:16" json:"status"`
	Reason         string         `gorm:"type:text" json:"reason,omitempty"`
	RecordsEmitted int            `gorm:"default:0" json:"records_emitted"`
	Plan           datatypes.JSON `json:"plan,omitempty" swaggertype:"object"`
	CreatedAt      time.Time      `json:"created_at"`
}
