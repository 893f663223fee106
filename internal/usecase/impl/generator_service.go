package impl

import (
	"context"
	"log/slog"
	"time"

	"retailcast/config"
	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"
	"retailcast/internal/domain/repository"
	"retailcast/internal/usecase"
	"retailcast/internal/util"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
)

const (
	basePriceMin = 5.0
	basePriceMax = 500.0

	// Unit price perturbation band around the product's base price.
	priceFactorMin = 0.8
	priceFactorMax = 1.2

	quantityMin = 1
	quantityMax = 4

	// Signup dates fall in the three years before generation time.
	signupLookbackYears = 3
)

// GeneratorService synthesizes the raw dataset. All randomness flows from
// the configured seed, so a run is reproducible.
type GeneratorService struct {
	cfg      *config.Config
	rawStore repository.RawStore
	logger   *slog.Logger
}

// NewGeneratorService is the constructor for GeneratorService.
func NewGeneratorService(cfg *config.Config, rawStore repository.RawStore, logger *slog.Logger) usecase.GeneratorUsecase {
	return &GeneratorService{
		cfg:      cfg,
		rawStore: rawStore,
		logger:   logger,
	}
}

// Generate synthesizes customers, products and transactions and writes the
// three raw CSV artifacts.
func (s *GeneratorService) Generate(ctx context.Context) (*usecase.GenerateResult, error) {
	gen := s.cfg.Generator
	if gen.Customers <= 0 || gen.Products <= 0 || gen.Transactions <= 0 {
		return nil, errors.Wrapf(domainerrors.ErrInvalidCounts,
			"customers=%d products=%d transactions=%d", gen.Customers, gen.Products, gen.Transactions)
	}
	if gen.EndDate.Before(gen.StartDate) {
		return nil, errors.Wrapf(domainerrors.ErrInvalidCounts,
			"window %s..%s", gen.StartDate.Format("2006-01-02"), gen.EndDate.Format("2006-01-02"))
	}

	faker := gofakeit.New(uint64(gen.Seed))

	customers := s.generateCustomers(faker, gen.Customers)
	products := s.generateProducts(faker, gen.Products)
	transactions := s.generateTransactions(faker, gen.Transactions, customers, products)

	if err := s.rawStore.WriteCustomers(ctx, customers); err != nil {
		return nil, errors.Wrap(err, "failed to write customers")
	}
	if err := s.rawStore.WriteProducts(ctx, products); err != nil {
		return nil, errors.Wrap(err, "failed to write products")
	}
	if err := s.rawStore.WriteTransactions(ctx, transactions); err != nil {
		return nil, errors.Wrap(err, "failed to write transactions")
	}

	s.logger.Info("synthetic data generated",
		slog.Int("customers", len(customers)),
		slog.Int("products", len(products)),
		slog.Int("transactions", len(transactions)),
		slog.Int64("seed", gen.Seed))

	return &usecase.GenerateResult{
		Customers:    len(customers),
		Products:     len(products),
		Transactions: len(transactions),
		StartDate:    gen.StartDate,
		EndDate:      gen.EndDate,
		Seed:         gen.Seed,
	}, nil
}

func (s *GeneratorService) generateCustomers(faker *gofakeit.Faker, n int) []*entity.Customer {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	earliest := now.AddDate(-signupLookbackYears, 0, 0)

	customers := make([]*entity.Customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, &entity.Customer{
			ID:         int64(i + 1),
			Name:       faker.Name(),
			Age:        faker.Number(18, 65),
			City:       faker.City(),
			SignupDate: faker.DateRange(earliest, now).Truncate(24 * time.Hour),
		})
	}

	return customers
}

func (s *GeneratorService) generateProducts(faker *gofakeit.Faker, n int) []*entity.Product {
	products := make([]*entity.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, &entity.Product{
			ID:        int64(i + 1),
			Name:      faker.ProductName(),
			Category:  entity.Categories[faker.Number(0, len(entity.Categories)-1)],
			BasePrice: util.RoundCents(faker.Float64Range(basePriceMin, basePriceMax)),
		})
	}

	return products
}

func (s *GeneratorService) generateTransactions(
	faker *gofakeit.Faker,
	n int,
	customers []*entity.Customer,
	products []*entity.Product,
) []*entity.Transaction {
	gen := s.cfg.Generator
	windowDays := int(gen.EndDate.Sub(gen.StartDate).Hours() / 24)

	transactions := make([]*entity.Transaction, 0, n)
	for i := 0; i < n; i++ {
		customer := customers[faker.Number(0, len(customers)-1)]
		product := products[faker.Number(0, len(products)-1)]

		quantity := faker.Number(quantityMin, quantityMax)
		unitPrice := util.RoundCents(product.BasePrice * faker.Float64Range(priceFactorMin, priceFactorMax))

		transactions = append(transactions, &entity.Transaction{
			ID:          int64(i + 1),
			CustomerID:  customer.ID,
			ProductID:   product.ID,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TotalAmount: util.MulCents(unitPrice, quantity),
			Date:        gen.StartDate.AddDate(0, 0, faker.Number(0, windowDays)),
		})
	}

	return transactions
}
