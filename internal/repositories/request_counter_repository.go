package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tropicaldog17/zakat/internal/db"
	"github.com/tropicaldog17/zakat/internal/models"
)

type requestCounterRepository struct {
	db *db.DB
}

func NewRequestCounterRepository(database *db.DB) RequestCounterRepository {
	return &requestCounterRepository{db: database}
}

func (r *requestCounterRepository) Count(ctx context.Context, year int, month time.Month) (int64, error) {
	var rc models.RequestCounter
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, int(month)).
		Take(&rc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read request counter: %w", err)
	}
	return rc.Count, nil
}

// TryIncrement adds one to the month's counter if it is still below limit,
// creating the row on first use. ok reports whether the call was counted; n
// is the count afterwards either way. The guard lives in the UPDATE itself, so
// concurrent callers cannot push the count past limit. A new month starts a
// new row, so counts reset without a scheduled job.
func (r *requestCounterRepository) TryIncrement(ctx context.Context, year int, month time.Month, limit int64) (n int64, ok bool, err error) {
	var rc models.RequestCounter
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.RequestCounter{Year: year, Month: int(month), UpdatedAt: time.Now().UTC()}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "month"}, {Name: "year"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}

		res := tx.Model(&models.RequestCounter{}).
			Where("year = ? AND month = ? AND count < ?", year, int(month), limit).
			Updates(map[string]interface{}{
				"count":      gorm.Expr("count + 1"),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		ok = res.RowsAffected == 1
		return tx.Where("year = ? AND month = ?", year, int(month)).Take(&rc).Error
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment request counter: %w", err)
	}
	return rc.Count, ok, nil
}
