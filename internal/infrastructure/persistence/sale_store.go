package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/edusabi/mobileFacul/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// itemsBatchSize bounds the rows of one INSERT into venda_itens
const itemsBatchSize = 100

// GormStore implements sale.Store over the clientes, produtos, vendas and
// venda_itens tables. Each method is a single statement or read; nothing
// spans a transaction.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ sale.Store = (*GormStore)(nil)

// ListCustomers fetches every customer ordered by id
func (s *GormStore) ListCustomers(ctx context.Context) ([]catalog.Customer, error) {
	var rows []models.ClienteModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	customers := make([]catalog.Customer, 0, len(rows))
	for i := range rows {
		customers = append(customers, *rows[i].ToDomain())
	}
	return customers, nil
}

// ListProducts fetches every product ordered by id, prices as stored
func (s *GormStore) ListProducts(ctx context.Context) ([]catalog.ProductRecord, error) {
	var rows []models.ProdutoModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	records := make([]catalog.ProductRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToRecord())
	}
	return records, nil
}

// GetCustomer finds a customer by its ID
func (s *GormStore) GetCustomer(ctx context.Context, id int64) (*catalog.Customer, error) {
	var model models.ClienteModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get cliente %d: %w", id, err)
	}
	return model.ToDomain(), nil
}

// GetProduct finds a product by its ID
func (s *GormStore) GetProduct(ctx context.Context, id int64) (*catalog.ProductRecord, error) {
	var model models.ProdutoModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get produto %d: %w", id, err)
	}
	record := model.ToRecord()
	return &record, nil
}

// InsertSale creates the header and reads it back so store defaults
// (numero, data) are visible to the caller.
func (s *GormStore) InsertSale(ctx context.Context, header sale.SaleHeader) (*sale.Sale, error) {
	var model models.VendaModel
	model.FromHeader(header)

	db := s.db.WithContext(ctx)
	if err := db.Create(&model).Error; err != nil {
		return nil, fmt.Errorf("insert venda: %w", err)
	}

	var stored models.VendaModel
	if err := db.First(&stored, "id = ?", model.ID).Error; err != nil {
		// header is persisted; fall back to the written values
		return model.ToDomain(), nil
	}
	return stored.ToDomain(), nil
}

// InsertLineItems writes all lines in batched INSERT statements
func (s *GormStore) InsertLineItems(ctx context.Context, items []sale.LineItemRecord) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.VendaItemModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.VendaItemFromRecord(item))
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&rows, itemsBatchSize).Error; err != nil {
		return fmt.Errorf("insert venda_itens: %w", err)
	}
	return nil
}

// QueryComposed reads the header with its customer, items and product names
func (s *GormStore) QueryComposed(ctx context.Context, saleID int64) (*sale.ComposedRecord, error) {
	var model models.VendaModel
	err := s.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Itens.Produto").
		First(&model, "id = ?", saleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("query venda %d: %w", saleID, err)
	}
	return model.ToComposed(), nil
}
