package csvstore

import (
	"context"
	"path/filepath"

	"retailcast/internal/domain/entity"
	"retailcast/internal/domain/repository"
)

const (
	CustomersFile    = "customers.csv"
	ProductsFile     = "products.csv"
	TransactionsFile = "transactions.csv"

	dateLayout = "2006-01-02"
)

var (
	customerHeader    = []string{"customer_id", "name", "age", "city", "signup_date"}
	productHeader     = []string{"product_id", "product_name", "category", "base_price"}
	transactionHeader = []string{"transaction_id", "customer_id", "product_id", "quantity", "price", "total_amount", "date"}
)

// rawStore reads and writes the generator's artifacts in a raw data
// directory.
type rawStore struct {
	dir string
}

// NewRawStore creates a repository.RawStore rooted at dir.
func NewRawStore(dir string) repository.RawStore {
	return &rawStore{dir: dir}
}

func (s *rawStore) WriteCustomers(_ context.Context, customers []*entity.Customer) error {
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

	return writeTable(filepath.Join(s.dir, CustomersFile), customerHeader, rows)
}

func (s *rawStore) WriteProducts(_ context.Context, products []*entity.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			formatInt(p.ID),
			p.Name,
			p.Category,
			formatCents(p.BasePrice),
		})
	}

	return writeTable(filepath.Join(s.dir, ProductsFile), productHeader, rows)
}

func (s *rawStore) WriteTransactions(_ context.Context, transactions []*entity.Transaction) error {
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
		})
	}

	return writeTable(filepath.Join(s.dir, TransactionsFile), transactionHeader, rows)
}

func (s *rawStore) ReadCustomers(_ context.Context) ([]*entity.RawCustomer, error) {
	rows, err := readTable(filepath.Join(s.dir, CustomersFile), customerHeader)
	if err != nil {
		return nil, err
	}

	customers := make([]*entity.RawCustomer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, &entity.RawCustomer{
			CustomerID: row[0],
			Name:       row[1],
			Age:        row[2],
			City:       row[3],
			SignupDate: row[4],
		})
	}

	return customers, nil
}

func (s *rawStore) ReadProducts(_ context.Context) ([]*entity.RawProduct, error) {
	rows, err := readTable(filepath.Join(s.dir, ProductsFile), productHeader)
	if err != nil {
		return nil, err
	}

	products := make([]*entity.RawProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, &entity.RawProduct{
			ProductID:   row[0],
			ProductName: row[1],
			Category:    row[2],
			BasePrice:   row[3],
		})
	}

	return products, nil
}

func (s *rawStore) ReadTransactions(_ context.Context) ([]*entity.RawTransaction, error) {
	rows, err := readTable(filepath.Join(s.dir, TransactionsFile), transactionHeader)
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.RawTransaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, &entity.RawTransaction{
			TransactionID: row[0],
			CustomerID:    row[1],
			ProductID:     row[2],
			Quantity:      row[3],
			Price:         row[4],
			TotalAmount:   row[5],
			Date:          row[6],
		})
	}

	return transactions, nil
}
