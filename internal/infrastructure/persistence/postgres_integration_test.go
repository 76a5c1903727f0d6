//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/notification"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/migration"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence/models"
	"github.com/abdelhalimemara/debrah-exp-v5.8/migrations"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newPostgresDB starts a PostgreSQL container and applies the embedded migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("debrah_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	return db
}

type leasedUnit struct {
	officeID uuid.UUID
	ownerID  uuid.UUID
	tenantID uuid.UUID
	unitID   uuid.UUID
}

func seedLeasedUnit(t *testing.T, db *gorm.DB) leasedUnit {
	t.Helper()
	now := time.Now()
	base := func() models.BaseModel {
		return models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	}

	office := models.OfficeModel{BaseModel: base(), Name: "Al Noor Real Estate", City: "Riyadh"}
	require.NoError(t, db.Create(&office).Error)
	owner := models.OwnerModel{BaseModel: base(), OfficeID: office.ID, FullName: "Fahad Al Qahtani"}
	require.NoError(t, db.Create(&owner).Error)
	tenant := models.TenantModel{BaseModel: base(), OfficeID: office.ID, FullName: "Omar Haddad"}
	require.NoError(t, db.Create(&tenant).Error)
	building := models.BuildingModel{BaseModel: base(), OfficeID: office.ID, OwnerID: owner.ID, Name: "Palm Tower"}
	require.NoError(t, db.Create(&building).Error)
	unit := models.UnitModel{BaseModel: base(), OfficeID: office.ID, BuildingID: building.ID, UnitNumber: "101", Status: property.UnitStatusVacant}
	require.NoError(t, db.Create(&unit).Error)

	return leasedUnit{officeID: office.ID, ownerID: owner.ID, tenantID: tenant.ID, unitID: unit.ID}
}

func TestPostgres_ContractLifecycle(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	fixture := seedLeasedUnit(t, db)
	repo := NewGormContractRepository(db)

	contract, err := property.NewContract(fixture.officeID, property.NewContractInput{
		TenantID:   fixture.tenantID,
		UnitID:     fixture.unitID,
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: decimal.NewFromInt(4500),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, contract))

	var unit models.UnitModel
	require.NoError(t, db.First(&unit, "id = ?", fixture.unitID).Error)
	assert.Equal(t, property.UnitStatusOccupied, unit.Status)

	loaded, err := repo.FindByIDForOffice(ctx, fixture.officeID, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, "Omar Haddad", loaded.TenantName)
	assert.Equal(t, "101", loaded.UnitNumber)
	assert.Equal(t, "Palm Tower", loaded.BuildingName)
	assert.True(t, decimal.NewFromInt(4500).Equal(loaded.RentAmount))

	require.NoError(t, loaded.Terminate())
	require.NoError(t, repo.SaveTermination(ctx, loaded))

	require.NoError(t, db.First(&unit, "id = ?", fixture.unitID).Error)
	assert.Equal(t, property.UnitStatusVacant, unit.Status)

	_, err = repo.FindByIDForOffice(ctx, uuid.New(), contract.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPostgres_PayableOptimisticLocking(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	fixture := seedLeasedUnit(t, db)

	contract, err := property.NewContract(fixture.officeID, property.NewContractInput{
		TenantID:   fixture.tenantID,
		UnitID:     fixture.unitID,
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: decimal.NewFromInt(3000),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormContractRepository(db).Save(ctx, contract))

	repo := NewGormPayableRepository(db)
	payable, err := finance.NewPayable(fixture.officeID, finance.NewPayableInput{
		ContractID: contract.ID,
		Amount:     decimal.NewFromInt(3000),
		Category:   finance.PayableCategoryRent,
		Type:       finance.PayableTypeIncoming,
		DueDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, payable))

	first, err := repo.FindByIDForOffice(ctx, fixture.officeID, payable.ID)
	require.NoError(t, err)
	second, err := repo.FindByIDForOffice(ctx, fixture.officeID, payable.ID)
	require.NoError(t, err)

	require.NoError(t, first.MarkAsPaid(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), finance.PaymentMethodCash, "R-1"))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.Cancel("tenant left"))
	err = repo.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	stored, err := repo.FindByIDForOffice(ctx, fixture.officeID, payable.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.PayableStatusPaid, stored.Status)

	paid, err := repo.FindAllForOffice(ctx, fixture.officeID, finance.PayableFilter{
		Statuses:   []finance.PayableStatus{finance.PayableStatusPaid},
		Pagination: shared.Pagination{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, paid, 1)
}

func TestPostgres_NotificationFeed(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	fixture := seedLeasedUnit(t, db)
	repo := NewGormNotificationRepository(db)

	var ids []uuid.UUID
	for _, title := range []string{"Rent due", "Expense added", "Contract created"} {
		n, err := notification.New(fixture.officeID, notification.TypeRentDue, title, "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, n))
		ids = append(ids, n.ID)
	}

	unread, err := repo.CountUnread(ctx, fixture.officeID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, repo.MarkRead(ctx, fixture.officeID, ids[0]))
	require.NoError(t, repo.SoftDelete(ctx, fixture.officeID, ids[1]))

	feed, err := repo.FindLatest(ctx, fixture.officeID, notification.FeedLimit)
	require.NoError(t, err)
	assert.Len(t, feed, 2)

	unread, err = repo.CountUnread(ctx, fixture.officeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	assert.ErrorIs(t, repo.MarkRead(ctx, fixture.officeID, ids[1]), shared.ErrNotFound)

	marked, err := repo.MarkAllRead(ctx, fixture.officeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)
}
