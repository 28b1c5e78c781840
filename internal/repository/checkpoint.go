package repository

import (
	"github.com/karyalink/engagement-go/internal/domain/checkpoint"
	"gorm.io/gorm"
)

type CheckpointRepo interface {
	GetCheckpointByID(id uint) (checkpoint.Checkpoint, error)
	ListByProjectID(projectID uint) ([]checkpoint.Checkpoint, error)
	// MaxOrder returns the highest order value for the project, 0 when the
	// project has no checkpoints yet.
	MaxOrder(projectID uint) (int, error)
	CreateCheckpoint(cp *checkpoint.Checkpoint) error
	UpdateCheckpoint(cp *checkpoint.Checkpoint) error
	WithTx(tx *gorm.DB) CheckpointRepo
}

type DBCheckpointRepo struct {
	db *gorm.DB
}

func NewCheckpointRepo(db *gorm.DB) *DBCheckpointRepo {
	return &DBCheckpointRepo{
		db: db,
	}
}

func (r *DBCheckpointRepo) GetCheckpointByID(id uint) (checkpoint.Checkpoint, error) {
	var cp checkpoint.Checkpoint
	err := r.db.First(&cp, id).Error
	return cp, err
}

func (r *DBCheckpointRepo) ListByProjectID(projectID uint) ([]checkpoint.Checkpoint, error) {
	var cps []checkpoint.Checkpoint
	err := r.db.Where("project_id = ?", projectID).Order("seq_no ASC").Find(&cps).Error
	return cps, err
}

func (r *DBCheckpointRepo) MaxOrder(projectID uint) (int, error) {
	var max *int
	err := r.db.Model(&checkpoint.Checkpoint{}).
		Select("MAX(seq_no)").
		Where("project_id = ?", projectID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *DBCheckpointRepo) CreateCheckpoint(cp *checkpoint.Checkpoint) error {
	return r.db.Create(cp).Error
}

func (r *DBCheckpointRepo) UpdateCheckpoint(cp *checkpoint.Checkpoint) error {
	return r.db.Save(cp).Error
}

func (r *DBCheckpointRepo) WithTx(tx *gorm.DB) CheckpointRepo {
	if tx == nil {
		return r
	}
	return &DBCheckpointRepo{
		db: tx,
	}
}
