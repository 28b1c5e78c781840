package repository

import (
	"github.com/karyalink/engagement-go/internal/domain/chat"
	"gorm.io/gorm"
)

type ChatRepo interface {
	CreateMessage(m *chat.Message) error
	// ListByProjectID pages the conversation oldest to newest. afterID is an
	// exclusive cursor; limit <= 0 means no limit.
	ListByProjectID(projectID uint, afterID uint, limit int) ([]chat.Message, error)
	WithTx(tx *gorm.DB) ChatRepo
}

type DBChatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) *DBChatRepo {
	return &DBChatRepo{
		db: db,
	}
}

func (r *DBChatRepo) CreateMessage(m *chat.Message) error {
	return r.db.Create(m).Error
}

func (r *DBChatRepo) ListByProjectID(projectID uint, afterID uint, limit int) ([]chat.Message, error) {
	var msgs []chat.Message
	q := r.db.Where("project_id = ?", projectID)
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}
	q = q.Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&msgs).Error
	return msgs, err
}

func (r *DBChatRepo) WithTx(tx *gorm.DB) ChatRepo {
	if tx == nil {
		return r
	}
	return &DBChatRepo{
		db: tx,
	}
}
