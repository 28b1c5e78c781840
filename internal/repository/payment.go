package repository

import (
	"github.com/karyalink/engagement-go/internal/domain/payment"
	"gorm.io/gorm"
)

type PaymentRepo interface {
	GetPaymentByID(id uint) (payment.Payment, error)
	ListByProjectID(projectID uint) ([]payment.Payment, error)
	ListPendingByProjectID(projectID uint) ([]payment.Payment, error)
	CountCompleted(projectID uint) (int64, error)
	CreatePayment(p *payment.Payment) error
	UpdatePayment(p *payment.Payment) error
	WithTx(tx *gorm.DB) PaymentRepo
}

type DBPaymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) *DBPaymentRepo {
	return &DBPaymentRepo{
		db: db,
	}
}

func (r *DBPaymentRepo) GetPaymentByID(id uint) (payment.Payment, error) {
	var p payment.Payment
	err := r.db.First(&p, id).Error
	return p, err
}

func (r *DBPaymentRepo) ListByProjectID(projectID uint) ([]payment.Payment, error) {
	var ps []payment.Payment
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC, id ASC").Find(&ps).Error
	return ps, err
}

func (r *DBPaymentRepo) ListPendingByProjectID(projectID uint) ([]payment.Payment, error) {
	var ps []payment.Payment
	err := r.db.
		Where("project_id = ? AND status = ?", projectID, payment.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&ps).Error
	return ps, err
}

func (r *DBPaymentRepo) CountCompleted(projectID uint) (int64, error) {
	var n int64
	err := r.db.Model(&payment.Payment{}).
		Where("project_id = ? AND status = ?", projectID, payment.StatusCompleted).
		Count(&n).Error
	return n, err
}

func (r *DBPaymentRepo) CreatePayment(p *payment.Payment) error {
	return r.db.Create(p).Error
}

func (r *DBPaymentRepo) UpdatePayment(p *payment.Payment) error {
	return r.db.Save(p).Error
}

func (r *DBPaymentRepo) WithTx(tx *gorm.DB) PaymentRepo {
	if tx == nil {
		return r
	}
	return &DBPaymentRepo{
		db: tx,
	}
}
