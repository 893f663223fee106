package impl

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"retailcast/config"
	"retailcast/internal/domain/entity"
	domainerrors "retailcast/internal/domain/errors"
	"retailcast/internal/domain/repository"
	"retailcast/internal/usecase"
	"retailcast/internal/util"

	"github.com/pkg/errors"
)

// defaultQuantity is imputed when a transaction's quantity is missing.
const defaultQuantity = 1

// dateLayouts are the accepted calendar date encodings, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CleaningService coerces the raw dataset to its documented types, imputes
// missing values and derives the feature columns. It treats its input as
// immutable and produces new artifacts.
type CleaningService struct {
	cfg        *config.Config
	rawStore   repository.RawStore
	cleanStore repository.CleanStore
	logger     *slog.Logger
}

// NewCleaningService is the constructor for CleaningService.
func NewCleaningService(
	cfg *config.Config,
	rawStore repository.RawStore,
	cleanStore repository.CleanStore,
	logger *slog.Logger,
) usecase.CleaningUsecase {
	return &CleaningService{
		cfg:        cfg,
		rawStore:   rawStore,
		cleanStore: cleanStore,
		logger:     logger,
	}
}

// Clean runs the whole stage. Every coercion failure is fatal: either all
// three cleaned artifacts are written or none.
func (s *CleaningService) Clean(ctx context.Context) (*usecase.CleanResult, error) {
	rawCustomers, err := s.rawStore.ReadCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read raw customers")
	}
	rawProducts, err := s.rawStore.ReadProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read raw products")
	}
	rawTransactions, err := s.rawStore.ReadTransactions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read raw transactions")
	}

	customers, imputedAges, err := s.cleanCustomers(rawCustomers)
	if err != nil {
		return nil, err
	}
	products, err := s.cleanProducts(rawProducts)
	if err != nil {
		return nil, err
	}
	transactions, imputedQuantities, err := s.cleanTransactions(rawTransactions)
	if err != nil {
		return nil, err
	}

	// All coercion succeeded; only now touch the output directory.
	if err := s.cleanStore.WriteCustomers(ctx, customers); err != nil {
		return nil, errors.Wrap(err, "failed to write cleaned customers")
	}
	if err := s.cleanStore.WriteProducts(ctx, products); err != nil {
		return nil, errors.Wrap(err, "failed to write cleaned products")
	}
	if err := s.cleanStore.WriteTransactions(ctx, transactions); err != nil {
		return nil, errors.Wrap(err, "failed to write cleaned transactions")
	}

	s.logger.Info("cleaning completed",
		slog.Int("customers", len(customers)),
		slog.Int("products", len(products)),
		slog.Int("transactions", len(transactions)),
		slog.Int("imputedAges", imputedAges),
		slog.Int("imputedQuantities", imputedQuantities))

	return &usecase.CleanResult{
		Customers:         len(customers),
		Products:          len(products),
		Transactions:      len(transactions),
		ImputedAges:       imputedAges,
		ImputedQuantities: imputedQuantities,
	}, nil
}

// cleanCustomers coerces customer rows and imputes missing ages with the
// median of the observed ones. An input where every age is missing makes
// that median undefined and fails the stage.
func (s *CleaningService) cleanCustomers(raw []*entity.RawCustomer) ([]*entity.Customer, int, error) {
	var observedAges []float64
	for _, r := range raw {
		if strings.TrimSpace(r.Age) == "" {
			continue
		}
		age, err := strconv.Atoi(strings.TrimSpace(r.Age))
		if err != nil {
			return nil, 0, errors.Wrapf(err, "customer %s: non-numeric age %q", r.CustomerID, r.Age)
		}
		observedAges = append(observedAges, float64(age))
	}

	missing := len(raw) - len(observedAges)
	var medianAge int
	if missing > 0 {
		if len(observedAges) == 0 {
			return nil, 0, errors.Wrapf(domainerrors.ErrNoObservedAges, "%d customers, all ages missing", len(raw))
		}
		median, err := util.Median(observedAges)
		if err != nil {
			return nil, 0, err
		}
		// Ages are integral; an even-count median of x.5 rounds half away
		// from zero.
		medianAge = int(math.Round(median))
	}

	customers := make([]*entity.Customer, 0, len(raw))
	imputed := 0
	for _, r := range raw {
		id, err := parsePositiveID(r.CustomerID)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "customer row %q", r.CustomerID)
		}

		age := medianAge
		if trimmed := strings.TrimSpace(r.Age); trimmed != "" {
			age, _ = strconv.Atoi(trimmed) // validated above
		} else {
			imputed++
		}

		signup, err := parseDate(r.SignupDate)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "customer %d: signup_date", id)
		}

		customers = append(customers, &entity.Customer{
			ID:         id,
			Name:       r.Name,
			Age:        age,
			City:       r.City,
			SignupDate: signup,
		})
	}

	return customers, imputed, nil
}

func (s *CleaningService) cleanProducts(raw []*entity.RawProduct) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(raw))
	for _, r := range raw {
		id, err := parsePositiveID(r.ProductID)
		if err != nil {
			return nil, errors.Wrapf(err, "product row %q", r.ProductID)
		}

		basePrice, err := strconv.ParseFloat(strings.TrimSpace(r.BasePrice), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "product %d: non-numeric base_price %q", id, r.BasePrice)
		}
		if basePrice <= 0 {
			return nil, errors.Errorf("product %d: base_price must be positive, got %v", id, basePrice)
		}

		products = append(products, &entity.Product{
			ID:        id,
			Name:      r.ProductName,
			Category:  r.Category,
			BasePrice: basePrice,
		})
	}

	return products, nil
}

// cleanTransactions coerces transaction rows, imputes missing quantities
// with 1 and derives the calendar and effective-price features.
func (s *CleaningService) cleanTransactions(raw []*entity.RawTransaction) ([]*entity.EnrichedTransaction, int, error) {
	transactions := make([]*entity.EnrichedTransaction, 0, len(raw))
	imputed := 0
	for _, r := range raw {
		id, err := parsePositiveID(r.TransactionID)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "transaction row %q", r.TransactionID)
		}
		customerID, err := parsePositiveID(r.CustomerID)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "transaction %d: customer_id", id)
		}
		productID, err := parsePositiveID(r.ProductID)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "transaction %d: product_id", id)
		}

		quantity := defaultQuantity
		if trimmed := strings.TrimSpace(r.Quantity); trimmed != "" {
			quantity, err = strconv.Atoi(trimmed)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "transaction %d: non-numeric quantity %q", id, r.Quantity)
			}
			// Quantity divides the total below; zero or negative counts are
			// schema violations, not imputable gaps.
			if quantity <= 0 {
				return nil, 0, errors.Errorf("transaction %d: quantity must be positive, got %d", id, quantity)
			}
		} else {
			imputed++
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(r.Price), 64)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "transaction %d: non-numeric price %q", id, r.Price)
		}
		if price <= 0 {
			return nil, 0, errors.Errorf("transaction %d: price must be positive, got %v", id, price)
		}
		total, err := strconv.ParseFloat(strings.TrimSpace(r.TotalAmount), 64)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "transaction %d: non-numeric total_amount %q", id, r.TotalAmount)
		}
		if total <= 0 {
			return nil, 0, errors.Errorf("transaction %d: total_amount must be positive, got %v", id, total)
		}

		date, err := parseDate(r.Date)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "transaction %d: date", id)
		}

		transactions = append(transactions, &entity.EnrichedTransaction{
			Transaction: entity.Transaction{
				ID:          id,
				CustomerID:  customerID,
				ProductID:   productID,
				Quantity:    quantity,
				UnitPrice:   price,
				TotalAmount: total,
				Date:        date,
			},
			Year:           date.Year(),
			Month:          int(date.Month()),
			Day:            date.Day(),
			DayOfWeek:      entity.DayOfWeek(date),
			EffectivePrice: util.DivCents(total, quantity),
		})
	}

	return transactions, imputed, nil
}

func parsePositiveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "non-numeric identifier %q", raw)
	}
	if id <= 0 {
		return 0, errors.Errorf("identifier must be positive, got %d", id)
	}

	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("unparseable date %q", raw)
}
