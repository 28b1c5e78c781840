package repository

import (
	"github.com/karyalink/engagement-go/internal/domain/project"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	GetProjectByID(id uint) (project.Project, error)
	// GetActiveByPartyID returns the caller's project in a non-terminal
	// state, if any. A party has at most one active engagement.
	GetActiveByPartyID(userID uint) (project.Project, error)
	CreateProject(p *project.Project) error
	UpdateProject(p *project.Project) error
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{
		db: db,
	}
}

func (r *DBProjectRepo) GetProjectByID(id uint) (project.Project, error) {
	var p project.Project
	err := r.db.First(&p, id).Error
	return p, err
}

func (r *DBProjectRepo) GetActiveByPartyID(userID uint) (project.Project, error) {
	var p project.Project
	err := r.db.
		Where("(client_id = ? OR worker_id = ?)", userID, userID).
		Where("status NOT IN ?", []project.Status{project.StatusCompleted, project.StatusCancelled}).
		Order("created_at DESC").
		First(&p).Error
	return p, err
}

func (r *DBProjectRepo) CreateProject(p *project.Project) error {
	return r.db.Create(p).Error
}

func (r *DBProjectRepo) UpdateProject(p *project.Project) error {
	return r.db.Save(p).Error
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{
		db: tx,
	}
}
