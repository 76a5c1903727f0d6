package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/property"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/auth"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/config"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/logger"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/persistence/models"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type options struct {
	owners    int
	buildings int
	units     int
	months    int
	seed      uint64
	tokenTTL  time.Duration
}

func main() {
	var opts options
	flag.IntVar(&opts.owners, "owners", 3, "Number of owners")
	flag.IntVar(&opts.buildings, "buildings", 2, "Buildings per owner")
	flag.IntVar(&opts.units, "units", 4, "Units per building")
	flag.IntVar(&opts.months, "months", 6, "Months of rent history per contract")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one)")
	flag.DurationVar(&opts.tokenTTL, "token-ttl", 24*time.Hour, "Lifetime of the printed access token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel("warn"), time.Second))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create schema", zap.Error(err))
		}
	}

	ctx := context.Background()
	s := &seeder{
		db:       db.DB,
		faker:    gofakeit.New(opts.seed),
		opts:     opts,
		log:      log,
		payables: persistence.NewGormPayableRepository(db.DB),
		payouts:  persistence.NewGormOwnerPayoutRepository(db.DB),
		finances: persistence.NewGormOfficeFinanceRepository(db.DB),
		contract: persistence.NewGormContractRepository(db.DB),
	}

	officeID, err := s.run(ctx)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	token, err := devToken(cfg.JWT, officeID, opts.tokenTTL)
	if err != nil {
		log.Fatal("Failed to sign access token", zap.Error(err))
	}
	log.Info("Office seeded", zap.String("office_id", officeID.String()))
	fmt.Println(token)
}

type seeder struct {
	db       *gorm.DB
	faker    *gofakeit.Faker
	opts     options
	log      *zap.Logger
	payables *persistence.GormPayableRepository
	payouts  *persistence.GormOwnerPayoutRepository
	finances *persistence.GormOfficeFinanceRepository
	contract *persistence.GormContractRepository
}

func (s *seeder) run(ctx context.Context) (uuid.UUID, error) {
	office := &models.OfficeModel{
		BaseModel: s.base(),
		Name:      s.faker.Company() + " Real Estate",
		Address:   s.faker.Street(),
		City:      s.faker.City(),
		Phone:     s.faker.Phone(),
		Email:     s.faker.Email(),
		CRNumber:  s.faker.Numerify("10########"),
	}
	if err := s.db.WithContext(ctx).Create(office).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create office: %w", err)
	}

	now := time.Now()
	for i := 0; i < s.opts.owners; i++ {
		owner := &models.OwnerModel{
			BaseModel: s.base(),
			OfficeID:  office.ID,
			FullName:  s.faker.Name(),
			Email:     s.faker.Email(),
			Phone:     s.faker.Phone(),
		}
		if err := s.db.WithContext(ctx).Create(owner).Error; err != nil {
			return uuid.Nil, fmt.Errorf("create owner: %w", err)
		}

		var ownerRent decimal.Decimal
		for b := 0; b < s.opts.buildings; b++ {
			rent, err := s.seedBuilding(ctx, office.ID, owner.ID, now)
			if err != nil {
				return uuid.Nil, err
			}
			ownerRent = ownerRent.Add(rent)
		}

		if err := s.seedPayouts(ctx, office.ID, owner.ID, ownerRent, now); err != nil {
			return uuid.Nil, err
		}
	}

	if err := s.seedFinances(ctx, office.ID, now); err != nil {
		return uuid.Nil, err
	}
	return office.ID, nil
}

// seedBuilding creates a building with leased units and returns the monthly
// rent of its contracts
func (s *seeder) seedBuilding(ctx context.Context, officeID, ownerID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	building := &models.BuildingModel{
		BaseModel: s.base(),
		OfficeID:  officeID,
		OwnerID:   ownerID,
		Name:      s.faker.LastName() + " Tower",
		City:      s.faker.City(),
	}
	if err := s.db.WithContext(ctx).Create(building).Error; err != nil {
		return decimal.Zero, fmt.Errorf("create building: %w", err)
	}

	total := decimal.Zero
	for u := 0; u < s.opts.units; u++ {
		unit := &models.UnitModel{
			BaseModel:  s.base(),
			OfficeID:   officeID,
			BuildingID: building.ID,
			UnitNumber: fmt.Sprintf("%d%02d", u/4+1, u%4+1),
			Status:     property.UnitStatusVacant,
		}
		// one unit in four stays vacant
		leased := s.faker.Number(1, 4) != 1
		if leased {
			unit.Status = property.UnitStatusOccupied
		}
		if err := s.db.WithContext(ctx).Create(unit).Error; err != nil {
			return decimal.Zero, fmt.Errorf("create unit: %w", err)
		}
		if !leased {
			continue
		}

		rent, err := s.seedContract(ctx, officeID, unit.ID, now)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(rent)
	}
	return total, nil
}

func (s *seeder) seedContract(ctx context.Context, officeID, unitID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	tenant := &models.TenantModel{
		BaseModel: s.base(),
		OfficeID:  officeID,
		FullName:  s.faker.Name(),
		Phone:     s.faker.Phone(),
	}
	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return decimal.Zero, fmt.Errorf("create tenant: %w", err)
	}

	rent := s.amount(2000, 9000)
	start := now.AddDate(0, -s.opts.months, 0)
	contract, err := property.NewContract(officeID, property.NewContractInput{
		TenantID:   tenant.ID,
		UnitID:     unitID,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, -1),
		RentAmount: rent,
	})
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.contract.Save(ctx, contract); err != nil {
		return decimal.Zero, fmt.Errorf("save contract: %w", err)
	}

	for m := 0; m <= s.opts.months; m++ {
		due := start.AddDate(0, m, 0)
		p, err := finance.NewPayable(officeID, finance.NewPayableInput{
			ContractID: contract.ID,
			Amount:     rent,
			Category:   finance.PayableCategoryRent,
			Type:       finance.PayableTypeIncoming,
			DueDate:    due,
			Notes:      fmt.Sprintf("Rent %s", due.Format("January 2006")),
		})
		if err != nil {
			return decimal.Zero, err
		}
		// older rent is mostly collected
		if due.Before(now.AddDate(0, -1, 0)) && s.faker.Number(1, 5) != 1 {
			if err := p.MarkAsPaid(due.AddDate(0, 0, s.faker.Number(0, 5)), s.paymentMethod(), s.faker.Numerify("TRX-########")); err != nil {
				return decimal.Zero, err
			}
		}
		if err := s.payables.Save(ctx, p); err != nil {
			return decimal.Zero, fmt.Errorf("save payable: %w", err)
		}
	}

	if s.faker.Bool() {
		fee, err := finance.NewPayable(officeID, finance.NewPayableInput{
			ContractID: contract.ID,
			Amount:     s.amount(100, 800),
			Category:   finance.PayableCategoryMaintenanceFee,
			Type:       finance.PayableTypeOutgoing,
			DueDate:    now.AddDate(0, 0, s.faker.Number(-20, 20)),
			Notes:      s.faker.Sentence(6),
		})
		if err != nil {
			return decimal.Zero, err
		}
		if err := s.payables.Save(ctx, fee); err != nil {
			return decimal.Zero, fmt.Errorf("save payable: %w", err)
		}
	}
	return rent, nil
}

func (s *seeder) seedPayouts(ctx context.Context, officeID, ownerID uuid.UUID, monthlyRent decimal.Decimal, now time.Time) error {
	if monthlyRent.IsZero() {
		return nil
	}
	// the office keeps a tenth as commission
	share := monthlyRent.Mul(decimal.NewFromFloat(0.9)).Round(2)
	for m := s.opts.months; m >= 1; m-- {
		periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		periodEnd := periodStart.AddDate(0, 1, -1)
		method := s.paymentMethod()

		in := finance.NewOwnerPayoutInput{
			OwnerID:     ownerID,
			Amount:      share,
			PayoutDate:  periodEnd.AddDate(0, 0, 5),
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			PayoutType:  finance.PayoutTypeRent,
			Notes:       fmt.Sprintf("Owner share %s", periodStart.Format("January 2006")),
		}
		if m > 1 {
			in.Status = finance.PayoutStatusPaid
			in.PaymentMethod = &method
			in.TransactionRef = s.faker.Numerify("PO-########")
		}
		p, err := finance.NewOwnerPayout(officeID, in)
		if err != nil {
			return err
		}
		if err := s.payouts.Save(ctx, p); err != nil {
			return fmt.Errorf("save payout: %w", err)
		}
	}
	return nil
}

func (s *seeder) seedFinances(ctx context.Context, officeID uuid.UUID, now time.Time) error {
	expenses := []finance.FinanceCategory{
		finance.FinanceCategorySalary,
		finance.FinanceCategoryRent,
		finance.FinanceCategoryUtilities,
		finance.FinanceCategoryMarketing,
	}
	for m := 0; m < s.opts.months; m++ {
		date := now.AddDate(0, -m, 0)
		status := finance.FinanceStatusCompleted
		if m == 0 {
			status = finance.FinanceStatusPending
		}
		for _, category := range expenses {
			f, err := finance.NewOfficeFinance(officeID, finance.NewOfficeFinanceInput{
				Amount:   s.amount(300, 6000),
				Type:     finance.FinanceTypeExpense,
				Category: category,
				Status:   status,
				Date:     date,
				Notes:    s.faker.Sentence(5),
			})
			if err != nil {
				return err
			}
			if err := s.finances.Save(ctx, f); err != nil {
				return fmt.Errorf("save office finance: %w", err)
			}
		}

		income, err := finance.NewOfficeFinance(officeID, finance.NewOfficeFinanceInput{
			Amount:         s.amount(1000, 4000),
			Type:           finance.FinanceTypeIncome,
			Category:       finance.FinanceCategoryOther,
			Status:         status,
			Date:           date,
			TransactionRef: s.faker.Numerify("INC-######"),
			Notes:          "Management commission",
		})
		if err != nil {
			return err
		}
		if err := s.finances.Save(ctx, income); err != nil {
			return fmt.Errorf("save office finance: %w", err)
		}
	}
	return nil
}

func (s *seeder) base() models.BaseModel {
	now := time.Now()
	return models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (s *seeder) amount(minValue, maxValue int) decimal.Decimal {
	return decimal.NewFromInt(int64(s.faker.Number(minValue, maxValue)))
}

func (s *seeder) paymentMethod() finance.PaymentMethod {
	methods := []finance.PaymentMethod{
		finance.PaymentMethodBankTransfer,
		finance.PaymentMethodCash,
		finance.PaymentMethodCheck,
	}
	return methods[s.faker.Number(0, len(methods)-1)]
}

// devToken signs an access token for a seeded office, for local requests only
func devToken(cfg config.JWTConfig, officeID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   "seed",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		OfficeID: officeID.String(),
		UserID:   uuid.NewString(),
		Username: "seed",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
