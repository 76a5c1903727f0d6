package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOfficeFinanceRepository implements finance.OfficeFinanceRepository using GORM
type GormOfficeFinanceRepository struct {
	db *gorm.DB
}

// NewGormOfficeFinanceRepository creates a new GormOfficeFinanceRepository
func NewGormOfficeFinanceRepository(db *gorm.DB) *GormOfficeFinanceRepository {
	return &GormOfficeFinanceRepository{db: db}
}

// FindByIDForOffice finds an office finance entry
func (r *GormOfficeFinanceRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.OfficeFinance, error) {
	var model models.OfficeFinanceModel
	if err := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOffice lists office finance entries, newest first
func (r *GormOfficeFinanceRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.FinanceFilter) ([]finance.OfficeFinance, error) {
	var rows []models.OfficeFinanceModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OfficeFinanceModel{}).Scopes(forOffice(officeID)), filter).
		Order("date DESC, created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]finance.OfficeFinance, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

// CountForOffice counts the entries matching the filter, ignoring paging
func (r *GormOfficeFinanceRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.FinanceFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OfficeFinanceModel{}).Scopes(forOffice(officeID)), filter).
		Count(&count).Error
	return count, err
}

// LatestOccurrence returns the date of the newest entry generated from a
// recurring entry
func (r *GormOfficeFinanceRepository) LatestOccurrence(ctx context.Context, officeID, sourceID uuid.UUID) (*time.Time, error) {
	var model models.OfficeFinanceModel
	err := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Select("date").
		Where("source_id = ?", sourceID).
		Order("date DESC").
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.Date, nil
}

// Save inserts a new entry
func (r *GormOfficeFinanceRepository) Save(ctx context.Context, f *finance.OfficeFinance) error {
	return r.db.WithContext(ctx).Create(models.OfficeFinanceModelFromDomain(f)).Error
}

// SaveWithLock updates an existing entry under optimistic locking
func (r *GormOfficeFinanceRepository) SaveWithLock(ctx context.Context, f *finance.OfficeFinance) error {
	model := models.OfficeFinanceModelFromDomain(f)
	if err := updateVersioned(ctx, r.db, model, &model.OfficeAggregateModel); err != nil {
		return err
	}
	f.Version = model.Version
	f.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteForOffice removes an entry of an office
func (r *GormOfficeFinanceRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		Delete(&models.OfficeFinanceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormOfficeFinanceRepository) applyFilter(query *gorm.DB, filter finance.FinanceFilter) *gorm.DB {
	query = inList(query, "type", filter.Types)
	query = inList(query, "category", filter.Categories)
	query = inList(query, "status", filter.Statuses)
	if filter.FromDate != nil {
		query = query.Where("date >= ?", shared.DateOf(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", shared.DateOf(*filter.ToDate))
	}
	if filter.Recurring != nil {
		query = query.Where("is_recurring = ?", *filter.Recurring)
	}
	if filter.SourceID != nil {
		query = query.Where("source_id = ?", *filter.SourceID)
	}
	return query
}
