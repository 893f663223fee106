// Package repository defines the persistence contracts between the pipeline
// stages. Stages never share memory; everything crosses these interfaces as
// completed files on the shared storage path.
package repository

import (
	"context"

	"retailcast/internal/domain/entity"
)

// RawStore persists the generator's output and hands it, untyped, to the
// cleaning stage.
type RawStore interface {
	WriteCustomers(ctx context.Context, customers []*entity.Customer) error
	WriteProducts(ctx context.Context, products []*entity.Product) error
	WriteTransactions(ctx context.Context, transactions []*entity.Transaction) error

	ReadCustomers(ctx context.Context) ([]*entity.RawCustomer, error)
	ReadProducts(ctx context.Context) ([]*entity.RawProduct, error)
	ReadTransactions(ctx context.Context) ([]*entity.RawTransaction, error)
}

// CleanStore persists the cleaned, feature-engineered artifacts.
type CleanStore interface {
	WriteCustomers(ctx context.Context, customers []*entity.Customer) error
	WriteProducts(ctx context.Context, products []*entity.Product) error
	WriteTransactions(ctx context.Context, transactions []*entity.EnrichedTransaction) error

	// TransactionsPath exposes the cleaned transactions file for consumers
	// that operate on the tabular artifact directly (the trainer's
	// dataframe aggregation).
	TransactionsPath() string
}

// ForecastStore persists the forecast table.
type ForecastStore interface {
	WriteForecast(ctx context.Context, points []*entity.ForecastPoint) error
}
