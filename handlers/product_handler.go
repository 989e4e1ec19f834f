package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"inventoryapp/logger"
	"inventoryapp/models"
	"inventoryapp/services"
)

// ProductHandler는 제품 관련 HTTP 요청을 처리한다.
type ProductHandler struct {
	service services.ProductService
}

// NewProductHandler는 제품 핸들러를 생성한다.
func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List 제품 목록 조회
// @Summary 제품 목록 조회
// @Description 검색/가격 필터와 정렬, 페이징을 적용해 제품 목록을 조회합니다
// @Tags 제품
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "SKU 또는 이름 부분 검색"
// @Param minPrice query number false "최소 가격"
// @Param maxPrice query number false "최대 가격"
// @Param sort query string false "정렬 키 (price, name, createdAt)"
// @Param dir query string false "정렬 방향 (asc, desc)"
// @Param pageNum query int false "페이지 번호 (기본 1)"
// @Param pageSize query int false "페이지 크기 (기본 10, 최대 100)"
// @Success 200 {object} models.APIResponse{data=models.ProductPage} "조회 성공"
// @Failure 401 {object} models.APIResponse "인증 필요"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parsePageQuery(r)

	page, err := h.service.List(r.Context(), query)
	if err != nil {
		logger.Error("Failed to query products: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to query products", err))
		return
	}

	logger.Info("Retrieved %d/%d products (page %d)", len(page.Items), page.Total, page.PageNum)
	json.NewEncoder(w).Encode(models.SuccessResponse("Products retrieved", page))
}

// Get 제품 상세 조회
// @Summary 제품 상세 조회
// @Description 특정 제품의 상세 정보를 조회합니다
// @Tags 제품
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Success 200 {object} models.APIResponse{data=models.Product} "조회 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "제품 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDFromRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse("Product not found", nil))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to retrieve product", err))
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Product retrieved", product))
}

// Create 제품 생성
// @Summary 제품 생성
// @Description 새로운 제품을 생성합니다. SKU는 전체 제품에서 유일해야 합니다
// @Tags 제품
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ProductRequest true "제품 정보"
// @Success 201 {object} models.APIResponse{data=models.Product} "생성 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 401 {object} models.APIResponse "인증 필요"
// @Failure 409 {object} models.APIResponse "중복 SKU"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse(err.Error(), nil))
			return
		case errors.Is(err, services.ErrSKUConflict):
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(models.ErrorResponse("Product with this SKU already exists", nil))
			return
		default:
			logger.WithFields(map[string]interface{}{"error": err.Error(), "sku": req.SKU}).Error("Failed to create product")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse("Failed to create product", err))
			return
		}
	}

	logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	}).Info("Product created")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.SuccessResponse("Product created successfully", product))
}

// Update 제품 수정
// @Summary 제품 수정
// @Description 제품 정보를 수정합니다. SKU 변경 시 중복 검사를 수행합니다
// @Tags 제품
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Param request body models.ProductRequest true "수정할 정보"
// @Success 200 {object} models.APIResponse "수정 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "제품 없음"
// @Failure 409 {object} models.APIResponse "중복 SKU"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse(err.Error(), nil))
			return
		case errors.Is(err, services.ErrSKUConflict):
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(models.ErrorResponse("Product with this SKU already exists", nil))
			return
		case errors.Is(err, services.ErrProductNotFound):
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse("Product not found", nil))
			return
		default:
			logger.WithFields(map[string]interface{}{
				"error":      err.Error(),
				"product_id": id,
			}).Error("Failed to update product")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse("Failed to update product", err))
			return
		}
	}

	logger.WithFields(map[string]interface{}{"product_id": id}).Info("Product updated")
	json.NewEncoder(w).Encode(models.SuccessResponse("Product updated successfully", nil))
}

// Delete 제품 삭제
// @Summary 제품 삭제
// @Description 제품을 영구 삭제합니다. 삭제된 ID는 재사용되지 않습니다
// @Tags 제품
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Success 200 {object} models.APIResponse "삭제 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 404 {object} models.APIResponse "제품 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse("Product not found", nil))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to delete product", err))
		return
	}

	logger.WithFields(map[string]interface{}{"product_id": id}).Info("Product deleted")
	json.NewEncoder(w).Encode(models.SuccessResponse("Product deleted successfully", nil))
}

// Movements 재고 변동 이력 조회
// @Summary 재고 변동 이력 조회
// @Description 제품의 재고 변동 이력을 최신순으로 조회합니다
// @Tags 제품
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "제품 ID"
// @Success 200 {object} models.APIResponse{data=[]models.StockMovement} "조회 성공"
// @Failure 404 {object} models.APIResponse "제품 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDFromRequest(w, r)
	if !ok {
		return
	}

	movements, err := h.service.ListMovements(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse("Product not found", nil))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to query stock movements", err))
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Stock movements retrieved", movements))
}

// productIDFromRequest 경로에서 추출된 제품 ID를 파싱한다.
// 라우터가 context("path_product_id")에 넣어주며, 없으면 쿼리 파라미터를 본다.
func productIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw, _ := r.Context().Value("path_product_id").(string)
	if raw == "" {
		raw = r.URL.Query().Get("id")
	}
	if strings.TrimSpace(raw) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Product ID is required", nil))
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid product ID", err))
		return 0, false
	}
	return id, true
}

// parsePageQuery 목록 조회 쿼리 파라미터를 읽는다.
// 파싱할 수 없는 값은 없는 것으로 취급하고, 범위 정규화는 서비스가 담당한다.
func parsePageQuery(r *http.Request) services.PageQuery {
	params := r.URL.Query()

	query := services.PageQuery{
		Search:  params.Get("q"),
		SortKey: params.Get("sort"),
		SortDir: params.Get("dir"),
	}

	if v := params.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query.MinPrice = &f
		}
	}
	if v := params.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			query.MaxPrice = &f
		}
	}
	if v := params.Get("pageNum"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query.PageNum = n
		}
	}
	if v := params.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query.PageSize = n
		}
	}

	return query
}
