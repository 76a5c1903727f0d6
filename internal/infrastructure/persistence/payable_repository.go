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

// GormPayableRepository implements finance.PayableRepository using GORM
type GormPayableRepository struct {
	db *gorm.DB
}

// NewGormPayableRepository creates a new GormPayableRepository
func NewGormPayableRepository(db *gorm.DB) *GormPayableRepository {
	return &GormPayableRepository{db: db}
}

// FindByIDForOffice finds a payable of an office with its contract reference
func (r *GormPayableRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*finance.Payable, error) {
	var model models.PayableModel
	if err := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p := model.ToDomain()
	refs, err := loadContractRefs(ctx, r.db, officeID, []uuid.UUID{p.ContractID})
	if err != nil {
		return nil, err
	}
	p.Contract = refs[p.ContractID]
	return p, nil
}

// FindAllForOffice lists the payables of an office, newest due date first
func (r *GormPayableRepository) FindAllForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayableFilter) ([]finance.Payable, error) {
	var rows []models.PayableModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PayableModel{}).Scopes(forOffice(officeID)), filter).
		Order("due_date DESC, created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	payables := make([]finance.Payable, len(rows))
	contractIDs := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		payables[i] = *rows[i].ToDomain()
		contractIDs = append(contractIDs, rows[i].ContractID)
	}
	if len(payables) == 0 {
		return payables, nil
	}

	refs, err := loadContractRefs(ctx, r.db, officeID, contractIDs)
	if err != nil {
		return nil, err
	}
	for i := range payables {
		payables[i].Contract = refs[payables[i].ContractID]
	}
	return payables, nil
}

// CountForOffice counts the payables matching the filter, ignoring paging
func (r *GormPayableRepository) CountForOffice(ctx context.Context, officeID uuid.UUID, filter finance.PayableFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PayableModel{}).Scopes(forOffice(officeID)), filter).
		Count(&count).Error
	return count, err
}

// Save inserts a new payable
func (r *GormPayableRepository) Save(ctx context.Context, p *finance.Payable) error {
	return r.db.WithContext(ctx).Create(models.PayableModelFromDomain(p)).Error
}

// SaveWithLock updates an existing payable if nobody changed it since it was
// read, then advances its version
func (r *GormPayableRepository) SaveWithLock(ctx context.Context, p *finance.Payable) error {
	model := models.PayableModelFromDomain(p)
	if err := updateVersioned(ctx, r.db, model, &model.OfficeAggregateModel); err != nil {
		return err
	}
	p.Version = model.Version
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteForOffice removes a payable of an office
func (r *GormPayableRepository) DeleteForOffice(ctx context.Context, officeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		Delete(&models.PayableModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPayableRepository) applyFilter(query *gorm.DB, filter finance.PayableFilter) *gorm.DB {
	if filter.ContractID != nil {
		query = query.Where("contract_id = ?", *filter.ContractID)
	}
	query = inList(query, "status", filter.Statuses)
	query = inList(query, "category", filter.Categories)
	query = inList(query, "type", filter.Types)
	if filter.FromDate != nil {
		query = query.Where("due_date >= ?", shared.DateOf(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("due_date <= ?", shared.DateOf(*filter.ToDate))
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	return query
}

// updateVersioned writes model over the row at the version it was read at.
// On success the model carries the new version.
func updateVersioned(ctx context.Context, db *gorm.DB, model any, root *models.OfficeAggregateModel) error {
	expected := root.Version
	root.Version = expected + 1
	root.UpdatedAt = time.Now().UTC()

	result := db.WithContext(ctx).Model(model).
		Where("office_id = ? AND version = ?", root.OfficeID, expected).
		Select("*").
		Omit("id", "created_at", "created_by", "office_id").
		Updates(model)
	if result.Error != nil {
		root.Version = expected
		return result.Error
	}
	if result.RowsAffected == 0 {
		root.Version = expected
		return shared.ErrConcurrencyConflict
	}
	return nil
}

type contractRefRow struct {
	ContractID   uuid.UUID
	TenantID     uuid.UUID
	TenantName   string
	UnitID       uuid.UUID
	UnitNumber   string
	BuildingName string
}

// loadContractRefs resolves tenant, unit and building names of contracts
func loadContractRefs(ctx context.Context, db *gorm.DB, officeID uuid.UUID, contractIDs []uuid.UUID) (map[uuid.UUID]*finance.ContractRef, error) {
	var rows []contractRefRow
	if err := db.WithContext(ctx).
		Table("contracts AS c").
		Select("c.id AS contract_id, c.tenant_id, t.full_name AS tenant_name, c.unit_id, u.unit_number, b.name AS building_name").
		Joins("LEFT JOIN tenants t ON t.id = c.tenant_id").
		Joins("LEFT JOIN units u ON u.id = c.unit_id").
		Joins("LEFT JOIN buildings b ON b.id = u.building_id").
		Where("c.office_id = ? AND c.id IN ?", officeID, uniqueIDs(contractIDs)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	refs := make(map[uuid.UUID]*finance.ContractRef, len(rows))
	for _, row := range rows {
		refs[row.ContractID] = &finance.ContractRef{
			ContractID:   row.ContractID,
			TenantID:     row.TenantID,
			TenantName:   row.TenantName,
			UnitID:       row.UnitID,
			UnitNumber:   row.UnitNumber,
			BuildingName: row.BuildingName,
		}
	}
	return refs, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
