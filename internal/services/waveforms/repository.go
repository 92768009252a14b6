package waveforms

import (
	"context"
	"errors"

	"github.com/killallgit/audioengine/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// repository implements WaveformRepository
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new waveform repository
func NewRepository(db *gorm.DB) WaveformRepository {
	return &repository{db: db}
}

// Get retrieves the waveform stored for a file at a width
func (r *repository) Get(ctx context.Context, filePath string, width int) (*models.Waveform, error) {
	var waveform models.Waveform
	err := r.db.WithContext(ctx).
		Where("file_path = ? AND width = ?", filePath, width).
		First(&waveform).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWaveformNotFound
		}
		return nil, err
	}

	return &waveform, nil
}

// Save upserts on (file_path, width), so concurrent writers for the same file converge
func (r *repository) Save(ctx context.Context, waveform *models.Waveform) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "file_path"}, {Name: "width"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"updated_at", "file_size", "mod_time", "peaks_data",
				"duration", "samples_per_pixel", "sample_rate", "channels",
			}),
		}).
		Create(waveform).Error
}

// DeleteByPath removes every width stored for a file
func (r *repository) DeleteByPath(ctx context.Context, filePath string) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("file_path = ?", filePath).
		Delete(&models.Waveform{})

	return result.RowsAffected, result.Error
}

// Exists checks if a waveform is stored for a file at a width
func (r *repository) Exists(ctx context.Context, filePath string, width int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Waveform{}).
		Where("file_path = ? AND width = ?", filePath, width).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
