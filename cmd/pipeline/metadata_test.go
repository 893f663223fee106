package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"retailcast/internal/infra/persistence/csvstore"
	"retailcast/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawArtifacts(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))

	files := map[string]string{
		csvstore.CustomersFile: "customer_id,name,age,city,signup_date\n" +
			"1,Ada,36,London,2022-05-01\n" +
			"2,Bob,41,Paris,2022-06-01\n",
		csvstore.ProductsFile: "product_id,product_name,category,base_price\n" +
			"1,Kettle,Home Decor,39.99\n",
		csvstore.TransactionsFile: "transaction_id,customer_id,product_id,quantity,price,total_amount,date\n" +
			"1,1,1,2,25.00,50.00,2023-03-15\n" +
			"2,2,1,1,42.50,42.50,2023-03-16\n" +
			"3,1,1,1,39.99,39.99,2023-03-17\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func testGenerateResult() *usecase.GenerateResult {
	return &usecase.GenerateResult{
		Customers:    2,
		Products:     1,
		Transactions: 3,
		StartDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:         42,
	}
}

func TestGenerateMetadata(t *testing.T) {
	dir := t.TempDir()
	writeRawArtifacts(t, dir)

	metadata, err := GenerateMetadata(dir, testGenerateResult())
	require.NoError(t, err)

	assert.Equal(t, metadataVersion, metadata.Version)
	assert.NotEmpty(t, metadata.RunID)
	assert.Equal(t, int64(42), metadata.Seed)
	assert.Equal(t, "2023-01-01", metadata.Window.Start)
	assert.Equal(t, "2023-12-31", metadata.Window.End)

	require.Len(t, metadata.Files, 3)
	assert.Equal(t, 2, metadata.Files[csvstore.CustomersFile].Rows)
	assert.Equal(t, 1, metadata.Files[csvstore.ProductsFile].Rows)
	assert.Equal(t, 3, metadata.Files[csvstore.TransactionsFile].Rows)
	for name, meta := range metadata.Files {
		assert.Len(t, meta.SHA256, 64, name)
		assert.Positive(t, meta.SizeBytes, name)
	}
}

func TestMetadata_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeRawArtifacts(t, dir)

	metadata, err := GenerateMetadata(dir, testGenerateResult())
	require.NoError(t, err)

	path := filepath.Join(dir, MetadataFile)
	require.NoError(t, SaveMetadata(path, metadata))

	loaded, err := LoadMetadataFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, metadata, loaded)
}

func TestCountDataRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0o644))
	rows, err := countDataRows(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	rows, err = countDataRows(path)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestValidateRawDataset(t *testing.T) {
	dir := t.TempDir()
	writeRawArtifacts(t, dir)

	metadata, err := GenerateMetadata(dir, testGenerateResult())
	require.NoError(t, err)
	require.NoError(t, SaveMetadata(filepath.Join(dir, MetadataFile), metadata))

	require.NoError(t, validateRawDataset(dir))
}

func TestValidateRawDataset_ChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	writeRawArtifacts(t, dir)

	metadata, err := GenerateMetadata(dir, testGenerateResult())
	require.NoError(t, err)
	require.NoError(t, SaveMetadata(filepath.Join(dir, MetadataFile), metadata))

	// Tamper with an artifact after the manifest was written.
	path := filepath.Join(dir, csvstore.ProductsFile)
	require.NoError(t, os.WriteFile(path, []byte("product_id,product_name,category,base_price\n1,Kettle,Home Decor,1.00\n"), 0o644))

	err = validateRawDataset(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestValidateRawDataset_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeRawArtifacts(t, dir)

	metadata, err := GenerateMetadata(dir, testGenerateResult())
	require.NoError(t, err)
	require.NoError(t, SaveMetadata(filepath.Join(dir, MetadataFile), metadata))

	require.NoError(t, os.Remove(filepath.Join(dir, csvstore.TransactionsFile)))

	err = validateRawDataset(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required file missing")
}
