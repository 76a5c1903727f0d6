package persistence

import (
	"context"
	"errors"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContractRepository implements property.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByIDForOffice finds a contract with its tenant, unit and building names
func (r *GormContractRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*property.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).Scopes(forOffice(officeID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	contract := model.ToDomain()
	refs, err := loadContractRefs(ctx, r.db, officeID, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if ref, ok := refs[id]; ok {
		contract.TenantName = ref.TenantName
		contract.UnitNumber = ref.UnitNumber
		contract.BuildingName = ref.BuildingName
	}
	return contract, nil
}

// Save inserts a contract and marks its unit occupied
func (r *GormContractRepository) Save(ctx context.Context, contract *property.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ContractModelFromDomain(contract)).Error; err != nil {
			return err
		}
		return setUnitStatus(tx, contract.OfficeID, contract.UnitID, property.UnitStatusOccupied)
	})
}

// SaveTermination stores a terminated contract and frees its unit
func (r *GormContractRepository) SaveTermination(ctx context.Context, contract *property.Contract) error {
	model := models.ContractModelFromDomain(contract)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateVersioned(ctx, tx, model, &model.OfficeAggregateModel); err != nil {
			return err
		}
		return setUnitStatus(tx, contract.OfficeID, contract.UnitID, property.UnitStatusVacant)
	})
	if err != nil {
		return err
	}
	contract.Version = model.Version
	contract.UpdatedAt = model.UpdatedAt
	return nil
}

func setUnitStatus(tx *gorm.DB, officeID, unitID uuid.UUID, status property.UnitStatus) error {
	return tx.Model(&models.UnitModel{}).
		Scopes(forOffice(officeID)).
		Where("id = ?", unitID).
		Update("status", status).Error
}

// GormOfficeRepository implements property.OfficeRepository using GORM
type GormOfficeRepository struct {
	db *gorm.DB
}

// NewGormOfficeRepository creates a new GormOfficeRepository
func NewGormOfficeRepository(db *gorm.DB) *GormOfficeRepository {
	return &GormOfficeRepository{db: db}
}

// FindByID finds an office letterhead
func (r *GormOfficeRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Office, error) {
	var model models.OfficeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllIDs lists the id of every office
func (r *GormOfficeRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.OfficeModel{}).Order("created_at").Pluck("id", &ids).Error
	return ids, err
}

// GormOwnerRepository implements property.OwnerRepository using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByIDForOffice finds an owner of an office
func (r *GormOwnerRepository) FindByIDForOffice(ctx context.Context, officeID, id uuid.UUID) (*property.Owner, error) {
	var model models.OwnerModel
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
