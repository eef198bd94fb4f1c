package repositories

import (
	"context"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"gorm.io/gorm"
)

// Jobs is the sqlite posting store. Rows are only ever inserted.
type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// ExistingIDs returns ids in insertion order.
func (j Jobs) ExistingIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := j.db.WithContext(ctx).Model(&models.Job{}).Order("rowid").Pluck("id", &ids).Error
	return ids, err
}

func (j Jobs) Append(ctx context.Context, job models.Job) error {
	return j.db.WithContext(ctx).Create(&job).Error
}

