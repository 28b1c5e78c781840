package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Project    ProjectRepo
	Checkpoint CheckpointRepo
	Chat       ChatRepo
	Payment    PaymentRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Project:    NewProjectRepo(db),
		Checkpoint: NewCheckpointRepo(db),
		Chat:       NewChatRepo(db),
		Payment:    NewPaymentRepo(db),
		db:         db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Project:    r.Project.WithTx(tx),
		Checkpoint: r.Checkpoint.WithTx(tx),
		Chat:       r.Chat.WithTx(tx),
		Payment:    r.Payment.WithTx(tx),
		db:         tx,
	}
}

// ExecTx runs fn inside one database transaction bounded by ctx. With no
// underlying connection (mock repos in tests) fn runs directly, mirroring
// WithTx's nil tolerance.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
