package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"gorm.io/gorm"
)

// Runs keeps the history of pipeline runs in the search_runs table.
type Runs struct {
	db *gorm.DB
}

func NewRunsRepository(db *gorm.DB) *Runs {
	return &Runs{db: db}
}

// Save inserts the run or overwrites its previous state.
func (r Runs) Save(ctx context.Context, run models.Run) error {
	return r.db.WithContext(ctx).Save(&run).Error
}

func (r Runs) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Run{}, "created_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
