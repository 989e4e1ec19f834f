package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"inventoryapp/database"
	"inventoryapp/logger"
	"inventoryapp/models"
	"inventoryapp/utils"
)

// Register 회원가입
// @Summary 회원가입
// @Description 이메일/이름/비밀번호로 새 계정을 생성합니다
// @Tags 사용자
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "가입 정보"
// @Success 201 {object} models.APIResponse "가입 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 409 {object} models.APIResponse "이미 사용 중인 이메일"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/users/register [post]
func Register(w http.ResponseWriter, r *http.Request) {
	requestID := r.Context().Value("request_id")

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Name is required", nil))
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid email address", nil))
		return
	}
	if len(req.Password) < 8 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Password must be at least 8 characters", nil))
		return
	}

	// 이메일 중복 사전 체크 (동시 가입은 UNIQUE 인덱스가 최종적으로 차단)
	var count int
	if err := database.DB.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", req.Email).Scan(&count); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to check email", err))
		return
	}
	if count > 0 {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(models.ErrorResponse("User with this email already exists", nil))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to hash password", err))
		return
	}

	_, err = database.DB.Exec(
		"INSERT INTO users (email, name, password, created_at) VALUES (?, ?, ?, ?)",
		req.Email, req.Name, hashed, utils.NowDB(),
	)
	if err != nil {
		if isDuplicateEmailError(err) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(models.ErrorResponse("User with this email already exists", nil))
			return
		}
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"email":      req.Email,
			"error":      err.Error(),
		}).Error("Failed to create user")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to create user", err))
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"email":      req.Email,
	}).Info("User registered")

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.SuccessResponse("User registered successfully", nil))
}

// SignIn 로그인
// @Summary 로그인
// @Description 이메일/비밀번호로 로그인하여 JWT 토큰을 발급받습니다
// @Tags 사용자
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "로그인 정보"
// @Success 200 {object} models.APIResponse{data=models.LoginResponse} "로그인 성공"
// @Failure 400 {object} models.APIResponse "잘못된 요청"
// @Failure 401 {object} models.APIResponse "인증 실패"
// @Failure 404 {object} models.APIResponse "사용자 없음"
// @Failure 500 {object} models.APIResponse "서버 에러"
// @Router /api/users/signin [post]
func SignIn(w http.ResponseWriter, r *http.Request) {
	requestID := r.Context().Value("request_id")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid request body", err))
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"email":      req.Email,
	}).Info("Sign-in attempt")

	var user models.User
	query := "SELECT id, email, name, password, created_at FROM users WHERE email = ?"
	err := database.DB.QueryRow(query, req.Email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Password, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Sign-in failed - user not found")

		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse("User does not exist", nil))
		return
	}
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"email":      req.Email,
			"error":      err.Error(),
		}).Error("Failed to query user")

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to query user", err))
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Sign-in failed - invalid password")

		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.ErrorResponse("Invalid credentials", nil))
		return
	}

	token, expiresAt, err := utils.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"user_id":    user.ID,
			"error":      err.Error(),
		}).Error("Failed to generate JWT token")

		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse("Failed to generate token", err))
		return
	}

	logger.WithFields(map[string]interface{}{
		"request_id": requestID,
		"user_id":    user.ID,
		"email":      user.Email,
	}).Info("Sign-in successful")

	response := models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}
	json.NewEncoder(w).Encode(models.SuccessResponse("Sign-in successful", response))
}

// GetProfile 내 프로필 조회
// @Summary 프로필 조회
// @Description 로그인된 사용자의 프로필을 조회합니다
// @Tags 사용자
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse{data=models.ProfileResponse} "조회 성공"
// @Failure 401 {object} models.APIResponse "인증 필요"
// @Failure 404 {object} models.APIResponse "사용자 없음"
// @Router /api/users/profile [get]
func GetProfile(w http.ResponseWriter, r *http.Request) {
	email, _ := r.Context().Value("email").(string)
	if email == "" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.ErrorResponse("Unauthorized", nil))
		return
	}

	var profile models.ProfileResponse
	query := "SELECT id, email, name, created_at FROM users WHERE email = ?"
	err := database.DB.QueryRow(query, email).Scan(
		&profile.UserID, &profile.Email, &profile.Name, &profile.CreatedAt,
	)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse("User not found", nil))
		return
	}

	json.NewEncoder(w).Encode(models.SuccessResponse("Profile retrieved", profile))
}

// isDuplicateEmailError UNIQUE 제약 위반 여부 (SQLite/MySQL)
func isDuplicateEmailError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "1062")
}
