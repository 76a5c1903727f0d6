package persistence

import (
	"context"
	"errors"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOwnerPayoutRepository implements finance.OwnerPayoutRepository using GORM
type GormOwnerPayoutRepository struct {
	db *gorm.DB
}

// NewGormOwnerPayoutRepository creates a new GormOwnerPayoutRepository
func NewGormOwnerPayoutRepository(db *gorm.DB) *GormOwnerPayoutRepository {
	return &GormOwnerPayoutRepository{db: db}
}

// FindByIDForOffice finds a payout of an office with its owner and unit
func (r *GormOwnerPayoutRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.OwnerPayout, error) {
	var model models.OwnerPayoutModel
	if err := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	payouts := []finance.OwnerPayout{*model.ToDomain()}
	if err := r.attachRefs(ctx, officeID, payouts); err != nil {
		return nil, err
	}
	return &payouts[0], nil
}

// FindAllForOffice lists the payouts of an office, newest payout date first
func (r *GormOwnerPayoutRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayoutFilter) ([]finance.OwnerPayout, error) {
	var rows []models.OwnerPayoutModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OwnerPayoutModel{}).Scopes(forOffice(officeID)), filter).
		Order("payout_date DESC, created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	payouts := make([]finance.OwnerPayout, len(rows))
	for i := range rows {
		payouts[i] = *rows[i].ToDomain()
	}
	if len(payouts) == 0 {
		return payouts, nil
	}
	if err := r.attachRefs(ctx, officeID, payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}

// CountForOffice counts the payouts matching the filter, ignoring paging
func (r *GormOwnerPayoutRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayoutFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OwnerPayoutModel{}).Scopes(forOffice(officeID)), filter).
		Count(&count).Error
	return count, err
}

// Save inserts a new payout
func (r *GormOwnerPayoutRepository) Save(ctx context.Context, p *finance.OwnerPayout) error {
	return r.db.WithContext(ctx).Create(models.OwnerPayoutModelFromDomain(p)).Error
}

// SaveWithLock updates an existing payout under optimistic locking
func (r *GormOwnerPayoutRepository) SaveWithLock(ctx context.Context, p *finance.OwnerPayout) error {
	model := models.OwnerPayoutModelFromDomain(p)
	if err := updateVersioned(ctx, r.db, model, &model.OfficeAggregateModel); err != nil {
		return err
	}
	p.Version = model.Version
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteForOffice removes a payout of an office
func (r *GormOwnerPayoutRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		Delete(&models.OwnerPayoutModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormOwnerPayoutRepository) applyFilter(query *gorm.DB, filter finance.PayoutFilter) *gorm.DB {
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	query = inList(query, "status", filter.Statuses)
	query = inList(query, "payout_type", filter.PayoutTypes)
	if filter.FromDate != nil {
		query = query.Where("payout_date >= ?", shared.DateOf(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("payout_date <= ?", shared.DateOf(*filter.ToDate))
	}
	return query
}

type unitRefRow struct {
	UnitID       uuid.UUID
	UnitNumber   string
	BuildingName string
}

// attachRefs fills owner names and unit references in place
func (r *GormOwnerPayoutRepository) attachRefs(ctx context.Context, officeID uuid.UUID, payouts []finance.OwnerPayout) error {
	ownerIDs := make([]uuid.UUID, 0, len(payouts))
	unitIDs := make([]uuid.UUID, 0, len(payouts))
	for _, p := range payouts {
		ownerIDs = append(ownerIDs, p.OwnerID)
		if p.UnitID != nil {
			unitIDs = append(unitIDs, *p.UnitID)
		}
	}

	var owners []models.OwnerModel
	if err := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Select("id", "full_name").
		Where("id IN ?", uniqueIDs(ownerIDs)).
		Find(&owners).Error; err != nil {
		return err
	}
	ownerRefs := make(map[uuid.UUID]*finance.OwnerRef, len(owners))
	for _, o := range owners {
		ownerRefs[o.ID] = &finance.OwnerRef{OwnerID: o.ID, FullName: o.FullName}
	}

	unitRefs := map[uuid.UUID]*finance.UnitRef{}
	if len(unitIDs) > 0 {
		var units []unitRefRow
		if err := r.db.WithContext(ctx).
			Table("units AS u").
			Select("u.id AS unit_id, u.unit_number, b.name AS building_name").
			Joins("LEFT JOIN buildings b ON b.id = u.building_id").
			Where("u.office_id = ? AND u.id IN ?", officeID, uniqueIDs(unitIDs)).
			Scan(&units).Error; err != nil {
			return err
		}
		for _, u := range units {
			unitRefs[u.UnitID] = &finance.UnitRef{UnitID: u.UnitID, UnitNumber: u.UnitNumber, BuildingName: u.BuildingName}
		}
	}

	for i := range payouts {
		payouts[i].Owner = ownerRefs[payouts[i].OwnerID]
		if payouts[i].UnitID != nil {
			payouts[i].Unit = unitRefs[*payouts[i].UnitID]
		}
	}
	return nil
}
