package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gatepass/internal/model"
)

// PassRepository defines gate-pass persistence operations.
type PassRepository interface {
	Create(ctx context.Context, pass *model.Pass) error
	Update(ctx context.Context, pass *model.Pass) error
	FindByID(ctx context.Context, id uint) (*model.Pass, error)
	// FindByIDForUpdate locks the pass row so a review decides against the
	// current status, not a stale read.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Pass, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Pass, error)
	ListByStatus(ctx context.Context, status model.PassStatus) ([]model.Pass, error)
	ListByStatusAndDate(ctx context.Context, status model.PassStatus, date string) ([]model.Pass, error)
	// CountActiveSlot counts pending/approved passes held by the student for
	// the slot, locking the matching rows.
	CountActiveSlot(ctx context.Context, userID uint, outDate, outTime string) (int64, error)
	// WithTransaction executes a function within a database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PassRepository) error) error
}

type passRepository struct {
	db *gorm.DB
}

// NewPassRepository creates a new pass repository.
func NewPassRepository(db *gorm.DB) PassRepository {
	return &passRepository{db: db}
}

func (r *passRepository) Create(ctx context.Context, pass *model.Pass) error {
	return r.db.WithContext(ctx).Create(pass).Error
}

func (r *passRepository) Update(ctx context.Context, pass *model.Pass) error {
	return r.db.WithContext(ctx).Save(pass).Error
}

func (r *passRepository) FindByID(ctx context.Context, id uint) (*model.Pass, error) {
	var pass model.Pass
	if err := r.db.WithContext(ctx).First(&pass, id).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

func (r *passRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Pass, error) {
	var pass model.Pass
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pass, id).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

// ListByUser returns the student's passes, newest first.
func (r *passRepository) ListByUser(ctx context.Context, userID uint) ([]model.Pass, error) {
	var passes []model.Pass
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

// ListByStatus returns passes in the given status with the owning student
// preloaded, newest first.
func (r *passRepository) ListByStatus(ctx context.Context, status model.PassStatus) ([]model.Pass, error) {
	var passes []model.Pass
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status = ?", status).
		Order("created_at desc").
		Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

// ListByStatusAndDate narrows ListByStatus to one out-date, ordered by the
// slot's start time.
func (r *passRepository) ListByStatusAndDate(ctx context.Context, status model.PassStatus, date string) ([]model.Pass, error) {
	var passes []model.Pass
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status = ? AND out_date = ?", status, date).
		Order("out_time asc").
		Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

func (r *passRepository) CountActiveSlot(ctx context.Context, userID uint, outDate, outTime string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Pass{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND out_date = ? AND out_time = ? AND status IN ?",
			userID, outDate, outTime, []model.PassStatus{model.PassPending, model.PassApproved}).
		Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *passRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PassRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &passRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
