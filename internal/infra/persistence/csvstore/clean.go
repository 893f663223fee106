package csvstore

import (
	"context"
	"path/filepath"
	"strconv"

	"retailcast/internal/domain/entity"
	"retailcast/internal/domain/repository"
)

const (
	CustomersCleanFile    = "customers_clean.csv"
	ProductsCleanFile     = "products_clean.csv"
	TransactionsCleanFile = "transactions_clean.csv"
)

// enrichedHeader extends the raw transaction contract with the derived
// feature columns, in the order downstream consumers expect.
var enrichedHeader = []string{
	"transaction_id", "customer_id", "product_id", "quantity", "price",
	"total_amount", "date", "year", "month", "day", "day_of_week",
	"effective_price",
}

// cleanStore writes the cleaning stage's artifacts into a processed data
// directory.
type cleanStore struct {
	dir string
}

// NewCleanStore creates a repository.CleanStore rooted at dir.
func NewCleanStore(dir string) repository.CleanStore {
	return &cleanStore{dir: dir}
}

func (s *cleanStore) WriteCustomers(_ context.Context, customers []*entity.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			formatInt(c.ID),
			c.Name,
			formatInt(int64(c.Age)),
			c.City,
			c.SignupDate.Format(dateLayout),
		})
	}

	return writeTable(filepath.Join(s.dir, CustomersCleanFile), customerHeader, rows)
}

func (s *cleanStore) WriteProducts(_ context.Context, products []*entity.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			formatInt(p.ID),
			p.Name,
			p.Category,
			formatCents(p.BasePrice),
		})
	}

	return writeTable(filepath.Join(s.dir, ProductsCleanFile), productHeader, rows)
}

func (s *cleanStore) WriteTransactions(_ context.Context, transactions []*entity.EnrichedTransaction) error {
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			formatInt(t.ID),
			formatInt(t.CustomerID),
			formatInt(t.ProductID),
			formatInt(int64(t.Quantity)),
			formatCents(t.UnitPrice),
			formatCents(t.TotalAmount),
			t.Date.Format(dateLayout),
			strconv.Itoa(t.Year),
			strconv.Itoa(t.Month),
			strconv.Itoa(t.Day),
			strconv.Itoa(t.DayOfWeek),
			formatCents(t.EffectivePrice),
		})
	}

	return writeTable(filepath.Join(s.dir, TransactionsCleanFile), enrichedHeader, rows)
}

func (s *cleanStore) TransactionsPath() string {
	return filepath.Join(s.dir, TransactionsCleanFile)
}
