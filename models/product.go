package models

// Product 제품 정보
type Product struct {
	ID        int64   `json:"id" db:"id"`
	SKU       string  `json:"sku" db:"sku"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
	CreatedAt string  `json:"created_at" db:"created_at"`
	UpdatedAt *string `json:"updated_at" db:"updated_at"` // 수정 전까지 null
}

// 가격 허용 범위
const (
	PriceMin = 0.0
	PriceMax = 100000.0
)

// ProductRequest 제품 생성/수정 요청
type ProductRequest struct {
	SKU      string  `json:"sku" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ProductPage 제품 목록 페이징 응답
type ProductPage struct {
	Total    int       `json:"total"`
	PageNum  int       `json:"pageNum"`
	PageSize int       `json:"pageSize"`
	Items    []Product `json:"items"`
}
