package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/config"
	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/httpresp"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/models"
	"github.com/rentgrid/car-rental-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type SignupRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	FullName    string  `json:"fullName" binding:"required"`
	PhoneNumber string  `json:"phoneNumber"`
	Role        string  `json:"role"`
	TenantID    *string `json:"tenantId"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleClientAdmin {
		httperr.BadRequest(c, "invalid_role", "Role must be customer or client_admin.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to process credentials.")
		return
	}

	// Admin accounts are auto-confirmed; customers would confirm via the
	// provider's email flow, which this service does not own.
	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if role == models.RoleClientAdmin {
		now := time.Now()
		user.EmailConfirmedAt = &now
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Failed to create account.")
		return
	}

	profile := models.Profile{
		ID:          user.ID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		TenantID:    req.TenantID,
	}

	if err := h.db.Create(&profile).Error; err != nil {
		// Compensation: never leave an identity without a profile.
		if delErr := h.db.Delete(&models.User{}, "id = ?", user.ID).Error; delErr != nil {
			zap.L().Error("signup rollback failed, orphaned identity",
				zap.String("user_id", user.ID), zap.Error(delErr))
		}
		httperr.Internal(c, "failed_to_create_profile", "Failed to create user profile.")
		return
	}

	httpresp.Created(c, gin.H{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		httperr.Internal(c, "internal_error", "Login failed.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	var profile models.Profile
	if err := h.db.Where("id = ?", user.ID).First(&profile).Error; err != nil {
		httperr.Internal(c, "profile_not_found", "Profile not found for this user.")
		return
	}

	token, err := h.generateToken(&user, &profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": profile.FullName,
			"role":      profile.Role,
			"tenant_id": profile.TenantID,
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var profile models.Profile
	if err := h.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Profile not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"full_name":   profile.FullName,
		"phone_number": profile.PhoneNumber,
		"role":        profile.Role,
		"tenant_id":   profile.TenantID,
	})
}

// Refresh re-issues a token for a caller whose current one is still
// valid, restarting the 24h window. Claims are rebuilt from the stored
// profile so role or tenant changes take effect on refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "User no longer exists.")
		return
	}

	var profile models.Profile
	if err := h.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		httperr.Internal(c, "profile_not_found", "Profile not found for this user.")
		return
	}

	token, err := h.generateToken(&user, &profile)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; logout is an acknowledgement for clients.
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.UserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.Unauthorized(c, "invalid_current_password", "Current password is incorrect.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to process credentials.")
		return
	}

	if err := h.db.Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Internal(c, "failed_to_change_password", "Failed to change password.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, profile *models.Profile) (string, error) {
	tenantID := ""
	if profile.TenantID != nil {
		tenantID = *profile.TenantID
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"tenantId": tenantID,
		"role":     profile.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
