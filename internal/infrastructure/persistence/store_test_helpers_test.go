package persistence

import (
	"testing"

	"github.com/edusabi/mobileFacul/internal/infrastructure/config"
	"github.com/edusabi/mobileFacul/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newSQLiteDB opens an in-memory database with the POS schema
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open("file::memory:"), &config.DatabaseConfig{MaxOpenConns: 1, LogLevel: "warn"},
		DatabaseOptions{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	require.NoError(t, db.DB.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	custo := "80.00"
	require.NoError(t, db.Create(&[]models.ClienteModel{
		{ID: 1, Nome: "Ana Souza", CPF: "111.222.333-44", Endereco: "Rua A, 10", Telefone: "81 9999-0000"},
		{ID: 2, Nome: "Bruno Lima", CPF: "555.666.777-88"},
	}).Error)
	require.NoError(t, db.Create(&[]models.ProdutoModel{
		{ID: 1, Nome: "Sela Australiana", Preco: "150.00", Custo: &custo, Estoque: 3},
		{ID: 2, Nome: "Cabresto", Preco: "100", Estoque: 10},
		{ID: 3, Nome: "Brinde", Preco: "abc"},
	}).Error)
}
