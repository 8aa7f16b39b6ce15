package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jlbernardo/barangaylink/internal/models"
)

// nextRequestNumber allocates the next request number for the year of the
// supplied instant, formatted as REQ-<year>-<zero-padded sequence>.
//
// The counter lives in its own row per year and is incremented under a
// row-level lock inside the caller's transaction, so concurrent submissions
// serialise on the row instead of racing a count-then-insert derivation. The
// unique index on service_requests.request_number remains as a backstop.
// The first allocation of a year seeds the counter from the rows already
// present, which keeps numbering continuous across schema migrations.
func nextRequestNumber(tx *gorm.DB, at time.Time) (string, error) {
	if tx == nil {
		return "", errors.New("request number: tx is required")
	}

	year := at.Year()

	var seq models.RequestSequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&seq).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, at.Location())
		end := start.AddDate(1, 0, 0)

		var existing int64
		if err := tx.Model(&models.ServiceRequest{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&existing).Error; err != nil {
			return "", fmt.Errorf("request number: seed counter: %w", err)
		}

		seq = models.RequestSequence{Year: year, Value: int(existing)}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("request number: create counter: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("request number: load counter: %w", err)
	}

	seq.Value++
	if err := tx.Model(&models.RequestSequence{}).
		Where("year = ?", year).
		Update("value", seq.Value).Error; err != nil {
		return "", fmt.Errorf("request number: advance counter: %w", err)
	}

	return fmt.Sprintf("REQ-%d-%04d", year, seq.Value), nil
}
