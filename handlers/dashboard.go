package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inventoryapp/database"
	"inventoryapp/models"
)

var lowStockThreshold = 5

// SetLowStockThreshold 재고 부족 기준 수량을 설정에서 주입한다.
func SetLowStockThreshold(n int) {
	if n > 0 {
		lowStockThreshold = n
	}
}

// GetDashboardStats 재고 현황 통계
// @Summary 재고 현황 통계
// @Description 제품 수, 총 재고 수량/금액, 재고 부족 제품 수를 조회합니다
// @Tags 대시보드
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "조회 성공"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/dashboard/stats [get]
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]interface{})

	var totalProducts, totalUnits, lowStock, outOfStock int
	var stockValue float64

	queries := []struct {
		query string
		args  []interface{}
		dest  interface{}
	}{
		{"SELECT COUNT(*) FROM products", nil, &totalProducts},
		{"SELECT COALESCE(SUM(quantity), 0) FROM products", nil, &totalUnits},
		{"SELECT COALESCE(SUM(price * quantity), 0) FROM products", nil, &stockValue},
		{"SELECT COUNT(*) FROM products WHERE quantity > 0 AND quantity <= ?", []interface{}{lowStockThreshold}, &lowStock},
		{"SELECT COUNT(*) FROM products WHERE quantity = 0", nil, &outOfStock},
	}
	for _, q := range queries {
		if err := database.DB.QueryRow(q.query, q.args...).Scan(q.dest); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse("Failed to query dashboard stats", err))
			return
		}
	}

	stats["total_products"] = totalProducts
	stats["total_stock_units"] = totalUnits
	stats["total_stock_value"] = stockValue
	stats["low_stock_products"] = lowStock
	stats["out_of_stock_products"] = outOfStock
	stats["low_stock_threshold"] = lowStockThreshold

	json.NewEncoder(w).Encode(models.SuccessResponse("Dashboard stats retrieved", stats))
}

// GetRecentMovements 최근 재고 변동 내역
// @Summary 최근 재고 변동 내역
// @Description 전체 제품의 최근 재고 변동을 최신순으로 조회합니다
// @Tags 대시보드
// @Produce json
// @Security BearerAuth
// @Param limit query int false "최대 건수 (기본 20, 최대 100)"
// @Success 200 {object} models.APIResponse "조회 성공"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/dashboard/movements [get]
func GetRecentMovements(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	// 삭제된 제품의 이력도 남으므로 LEFT JOIN
	rows, err := database.DB.Query(`
		SELECT m.id, m.product_id, m.delta, COALESCE(m.reason, ''), m.created_at,
			   COALESCE(p.sku, ''), COALESCE(p.name, '')
		FROM stock_movements m
		LEFT JOIN products p ON m.product_id = p.id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ?`, limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to query movements", err))
		return
	}
	defer rows.Close()

	movements := []map[string]interface{}{}
	for rows.Next() {
		var (
			id, productID int64
			delta         int
			reason        string
			createdAt     string
			sku, name     string
		)
		if err := rows.Scan(&id, &productID, &delta, &reason, &createdAt, &sku, &name); err != nil {
			continue
		}

		movements = append(movements, map[string]interface{}{
			"id":         id,
			"product_id": productID,
			"sku":        sku,
			"name":       name,
			"delta":      delta,
			"reason":     reason,
			"created_at": createdAt,
		})
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Recent movements retrieved", movements))
}
