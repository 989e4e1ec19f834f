package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inventoryapp/config"
	"inventoryapp/database"
	_ "inventoryapp/docs" // Swagger 문서
	"inventoryapp/handlers"
	"inventoryapp/logger"
	"inventoryapp/middleware"
	"inventoryapp/services"
	"inventoryapp/utils"

	httpSwagger "github.com/swaggo/http-swagger"
)

var productHTTPHandler *handlers.ProductHandler

// @title Inventory Management API
// @version 1.0
// @description 제품 재고 관리 REST 백엔드

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT 토큰을 입력하세요. 형식: Bearer {token}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// 로거 초기화
	logConfig := logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		LogDir:   cfg.LogDir,
		MaxAge:   7, // 7일
		UseColor: true,
	}

	if err := logger.Initialize(logConfig); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("🚀 Inventory Management Server Starting")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// 데이터베이스 초기화
	if err := database.Initialize(cfg.DBType, cfg.DBDSN); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if cfg.SeedSampleData {
		if err := database.Seed(utils.NowDB()); err != nil {
			logger.Fatal("Failed to seed sample data: %v", err)
		}
	}

	utils.ConfigureJWT(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	handlers.SetLowStockThreshold(cfg.LowStockThreshold)

	// 서비스 계층 초기화
	sqlExecutor := services.NewSQLExecutor(database.DB)
	productService := services.NewProductService(sqlExecutor)
	productHTTPHandler = handlers.NewProductHandler(productService)

	// 라우터 설정
	mux := http.NewServeMux()

	// Swagger 문서
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Public 엔드포인트
	mux.HandleFunc("/", homeHandler)
	mux.HandleFunc("/health", healthHandler)

	// 사용자 API (인증 불필요)
	mux.HandleFunc("/api/users/register",
		middleware.ChainMiddleware(
			requirePost(handlers.Register),
			middleware.LoggingMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/users/signin",
		middleware.ChainMiddleware(
			requirePost(handlers.SignIn),
			middleware.LoggingMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 사용자 프로필 (인증 필요)
	mux.HandleFunc("/api/users/profile",
		middleware.ChainMiddleware(
			handlers.GetProfile,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 제품 API (인증 필요)
	mux.HandleFunc("/api/products",
		middleware.ChainMiddleware(
			productHandler,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/products/",
		middleware.ChainMiddleware(
			productDetailHandler,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 대시보드 API (인증 필요)
	mux.HandleFunc("/api/dashboard/stats",
		middleware.ChainMiddleware(
			handlers.GetDashboardStats,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	mux.HandleFunc("/api/dashboard/movements",
		middleware.ChainMiddleware(
			handlers.GetRecentMovements,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware,
			middleware.CORSMiddleware,
			middleware.SetJSONHeader,
		))

	// 서버 설정
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown 설정
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Warn("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
		database.Close()
		os.Exit(0)
	}()

	logger.Info("Server listening on http://localhost%s", addr)
	logger.Info("Swagger UI: http://localhost%s/swagger/index.html", addr)
	logger.Info("Database: %s (%s)", cfg.DBType, cfg.DBDSN)
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start: %v", err)
	}
}

// homeHandler 루트 핸들러
func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Inventory Management Server","version":"1.0.0"}`))
}

// healthHandler 헬스체크 핸들러
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"success","message":"Server is healthy"}`))
}

// requirePost POST 이외의 메서드 차단
func requirePost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// productHandler 제품 목록/생성 핸들러
func productHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		productHTTPHandler.List(w, r)
	case http.MethodPost:
		productHTTPHandler.Create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// productDetailHandler 제품 상세/수정/삭제 및 재고 이력 핸들러
func productDetailHandler(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/products/")
	path = strings.Trim(path, "/")

	// /api/products/{id}/movements 하위 경로 처리
	if idx := strings.Index(path, "/"); idx != -1 {
		id, rest := path[:idx], path[idx+1:]
		if rest != "movements" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		ctx := context.WithValue(r.Context(), "path_product_id", id)
		productHTTPHandler.Movements(w, r.WithContext(ctx))
		return
	}

	if path != "" {
		ctx := context.WithValue(r.Context(), "path_product_id", path)
		r = r.WithContext(ctx)
	}

	switch r.Method {
	case http.MethodGet:
		productHTTPHandler.Get(w, r)
	case http.MethodPut:
		productHTTPHandler.Update(w, r)
	case http.MethodDelete:
		productHTTPHandler.Delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
