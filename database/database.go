package database

import (
	"database/sql"
	"fmt"
	"strings"

	"inventoryapp/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

var DB *sql.DB
var dbType string

// Initialize 데이터베이스 초기화
// dbType: "sqlite" 또는 "mysql"
// dsn: SQLite 파일 경로 또는 MySQL DSN
func Initialize(t, dsn string) error {
	var err error

	if t == "" {
		t = "sqlite"
	}
	if dsn == "" && t == "sqlite" {
		dsn = "./inventory.db"
	}

	dbType = t

	// SQLite PRAGMA는 커넥션 단위라서 DSN으로 넘긴다.
	// DB.Exec로 실행하면 커넥션 풀의 한 커넥션에만 적용된다.
	if dbType == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	DB, err = sql.Open(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info("Database initialized successfully (%s)", dbType)
	return nil
}

// sqliteDSN 모든 풀 커넥션에 적용될 PRAGMA를 DSN에 붙인다.
// 검색은 대소문자를 구분한다. SQLite LIKE 기본값은 ASCII 대소문자 무시.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=case_sensitive_like(1)"
}

// createTables 테이블 생성
func createTables() error {
	var statements []string

	if dbType == "sqlite" {
		statements = []string{
			// AUTOINCREMENT: 삭제된 id가 재사용되지 않도록 보장
			`CREATE TABLE IF NOT EXISTS products (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				sku TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				price REAL NOT NULL DEFAULT 0,
				quantity INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL DEFAULT '',
				updated_at TEXT
			)`,

			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				password TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT ''
			)`,

			`CREATE TABLE IF NOT EXISTS stock_movements (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				product_id INTEGER NOT NULL,
				delta INTEGER NOT NULL,
				reason TEXT,
				created_at TEXT NOT NULL DEFAULT ''
			)`,

			`CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)`,
			`CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)`,
			`CREATE INDEX IF NOT EXISTS idx_products_created ON products(created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_movements_product ON stock_movements(product_id)`,
		}
	} else {
		// MySQL: utf8mb4_bin 콜레이션으로 SKU/검색 대소문자 구분
		statements = []string{
			`CREATE TABLE IF NOT EXISTS products (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				sku VARCHAR(100) NOT NULL UNIQUE,
				name VARCHAR(255) NOT NULL,
				price DECIMAL(10,2) NOT NULL DEFAULT 0,
				quantity INT NOT NULL DEFAULT 0,
				created_at VARCHAR(50) NOT NULL DEFAULT '',
				updated_at VARCHAR(50),
				INDEX idx_products_name (name),
				INDEX idx_products_price (price),
				INDEX idx_products_created (created_at)
			) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,

			`CREATE TABLE IF NOT EXISTS users (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				email VARCHAR(100) NOT NULL UNIQUE,
				name VARCHAR(255) NOT NULL,
				password VARCHAR(255) NOT NULL,
				created_at VARCHAR(50) NOT NULL DEFAULT ''
			) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,

			`CREATE TABLE IF NOT EXISTS stock_movements (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				product_id BIGINT NOT NULL,
				delta INT NOT NULL,
				reason VARCHAR(255),
				created_at VARCHAR(50) NOT NULL DEFAULT '',
				INDEX idx_movements_product (product_id)
			) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
		}
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute SQL: %w", err)
		}
	}

	return nil
}

// Seed 샘플 제품 생성 (최초 기동 시에만, SEED_SAMPLE_DATA=true일 때 호출)
func Seed(now string) error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already exist, skipping sample data")
		return nil
	}

	samples := []struct {
		sku      string
		name     string
		price    float64
		quantity int
	}{
		{"KB-001", "Mechanical Keyboard", 89.99, 25},
		{"MS-001", "Wireless Mouse", 39.99, 40},
		{"MN-27Q", "27in QHD Monitor", 329.00, 12},
	}

	query := `INSERT INTO products (sku, name, price, quantity, created_at) VALUES (?, ?, ?, ?, ?)`

	for _, s := range samples {
		if _, err := DB.Exec(query, s.sku, s.name, s.price, s.quantity, now); err != nil {
			logger.Error("Failed to seed sample product %s: %v", s.sku, err)
			return err
		}
	}

	logger.Info("Sample products created: %d", len(samples))
	return nil
}

// Close 데이터베이스 연결 종료
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
