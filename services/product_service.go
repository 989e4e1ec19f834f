package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inventoryapp/models"
	"inventoryapp/utils"
)

var (
	// ErrProductNotFound는 제품이 존재하지 않을 때 반환됩니다.
	ErrProductNotFound = errors.New("product not found")
	// ErrSKUConflict는 동일한 SKU의 제품이 이미 존재할 때 반환됩니다.
	ErrSKUConflict = errors.New("product sku already exists")
	// ErrValidation은 요청 본문이 유효하지 않을 때 반환됩니다.
	ErrValidation = errors.New("validation failed")
)

// ProductService는 제품 도메인에 대한 비즈니스 로직을 정의합니다.
type ProductService interface {
	List(ctx context.Context, query PageQuery) (models.ProductPage, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, req models.ProductRequest) (models.Product, error)
	Update(ctx context.Context, id int64, req models.ProductRequest) error
	Delete(ctx context.Context, id int64) error
	ListMovements(ctx context.Context, productID int64) ([]models.StockMovement, error)
}

type productService struct {
	db SQLExecutor
}

// NewProductService는 ProductService 구현체를 생성합니다.
func NewProductService(db SQLExecutor) ProductService {
	return &productService{db: db}
}

const productColumns = "id, sku, name, price, quantity, created_at, updated_at"

// List 필터/정렬/페이징 조건에 따라 제품 목록을 조회한다.
// 잘못된 파라미터는 거부하지 않고 정규화한다. total은 페이징 적용 전 건수.
func (s *productService) List(ctx context.Context, query PageQuery) (models.ProductPage, error) {
	q := query.Normalized()

	where, args := q.filterClause()

	var total int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.ProductPage{}, err
	}

	selectQuery := "SELECT " + productColumns + " FROM products WHERE 1=1" + where +
		q.orderClause() + " LIMIT ? OFFSET ?"
	selectArgs := append(args, q.PageSize, q.Offset())

	rows, err := s.db.QueryContext(ctx, selectQuery, selectArgs...)
	if err != nil {
		return models.ProductPage{}, err
	}
	defer rows.Close()

	items := make([]models.Product, 0, q.PageSize)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return models.ProductPage{}, err
		}
		items = append(items, product)
	}
	if err := rows.Err(); err != nil {
		return models.ProductPage{}, err
	}

	return models.ProductPage{
		Total:    total,
		PageNum:  q.PageNum,
		PageSize: q.PageSize,
		Items:    items,
	}, nil
}

func (s *productService) Get(ctx context.Context, id int64) (models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Create 제품을 생성한다. SKU 중복은 사전 체크하고, 동시 쓰기 경합은
// 스토리지의 UNIQUE 인덱스가 최종적으로 막는다. 두 경로 모두 ErrSKUConflict.
func (s *productService) Create(ctx context.Context, req models.ProductRequest) (models.Product, error) {
	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateProduct(req); err != nil {
		return models.Product{}, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM products WHERE sku = ?", req.SKU).Scan(&count); err != nil {
		return models.Product{}, err
	}
	if count > 0 {
		return models.Product{}, ErrSKUConflict
	}

	now := utils.NowDB()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO products (sku, name, price, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		req.SKU, req.Name, req.Price, req.Quantity, now,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return models.Product{}, ErrSKUConflict
		}
		return models.Product{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}

	if req.Quantity != 0 {
		if err := recordMovement(ctx, tx, id, req.Quantity, models.MovementReasonInitialStock, now); err != nil {
			return models.Product{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, err
	}

	return models.Product{
		ID:        id,
		SKU:       req.SKU,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		CreatedAt: now,
	}, nil
}

// Update 제품을 수정한다. SKU가 실제로 바뀔 때만 중복 체크를 수행하며,
// 수정 대상 자신은 체크에서 제외한다. created_at은 유지, updated_at 갱신.
func (s *productService) Update(ctx context.Context, id int64, req models.ProductRequest) error {
	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateProduct(req); err != nil {
		return err
	}

	var currentSKU string
	var currentQuantity int
	err := s.db.QueryRowContext(ctx,
		"SELECT sku, quantity FROM products WHERE id = ?", id).Scan(&currentSKU, &currentQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if req.SKU != currentSKU {
		var count int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM products WHERE sku = ? AND id <> ?", req.SKU, id).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return ErrSKUConflict
		}
	}

	now := utils.NowDB()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET sku = ?, name = ?, price = ?, quantity = ?, updated_at = ?
		WHERE id = ?`,
		req.SKU, req.Name, req.Price, req.Quantity, now, id,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrSKUConflict
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if delta := req.Quantity - currentQuantity; delta != 0 {
		if err := recordMovement(ctx, tx, id, delta, models.MovementReasonAdjustment, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrProductNotFound
	}
	return err
}

// ListMovements 제품의 재고 변동 이력을 최신순으로 조회한다.
func (s *productService) ListMovements(ctx context.Context, productID int64) ([]models.StockMovement, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM products WHERE id = ?", productID).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrProductNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, delta, reason, created_at
		FROM stock_movements
		WHERE product_id = ?
		ORDER BY created_at DESC, id DESC`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]models.StockMovement, 0)
	for rows.Next() {
		var (
			movement models.StockMovement
			reason   sql.NullString
		)
		if err := rows.Scan(&movement.ID, &movement.ProductID, &movement.Delta, &reason, &movement.CreatedAt); err != nil {
			return nil, err
		}
		if reason.Valid {
			movement.Reason = reason.String
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

// recordMovement 재고 변동 이력을 같은 트랜잭션 안에서 기록한다.
func recordMovement(ctx context.Context, tx *sql.Tx, productID int64, delta int, reason, now string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO stock_movements (product_id, delta, reason, created_at)
		VALUES (?, ?, ?, ?)`,
		productID, delta, reason, now,
	)
	return err
}

// validateProduct 스토어 접근 전에 요청 본문을 검증한다.
func validateProduct(req models.ProductRequest) error {
	if req.SKU == "" {
		return fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price < models.PriceMin || req.Price > models.PriceMax {
		return fmt.Errorf("%w: price must be between %.0f and %.0f", ErrValidation, models.PriceMin, models.PriceMax)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be zero or greater", ErrValidation)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		product   models.Product
		updatedAt sql.NullString
	)
	if err := row.Scan(&product.ID, &product.SKU, &product.Name, &product.Price,
		&product.Quantity, &product.CreatedAt, &updatedAt); err != nil {
		return models.Product{}, err
	}
	if updatedAt.Valid {
		product.UpdatedAt = &updatedAt.String
	}
	return product, nil
}

// isDuplicateKeyError UNIQUE 제약 위반 여부 (SQLite/MySQL)
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "1062")
}
