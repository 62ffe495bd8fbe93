package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/http/middleware"
	"invoice-engine/internal/repositories"
	"invoice-engine/internal/utils"
)

// UserFinder looks a user up by email or username.
type UserFinder interface {
	FindByLogin(ctx context.Context, login string) (repositories.User, error)
}

type AuthHandler struct {
	Users  UserFinder
	Secret []byte
	TTL    time.Duration
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "payload tidak valid", nil)
		return
	}

	user, err := h.Users.FindByLogin(c.Request.Context(), req.Email)
	if err != nil {
		if domain.IsNotFound(err) || domain.IsValidation(err) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "Email/username atau password salah", nil)
			return
		}
		utils.LogError(middleware.GetRequestID(c), "auth", "login", err)
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "Email/username atau password salah", nil)
		return
	}
	if s := strings.ToLower(strings.TrimSpace(user.Status)); s != "" && s != "active" {
		respondError(c, http.StatusForbidden, "inactive_user", "akun tidak aktif", nil)
		return
	}

	ttl := h.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	tokenString, err := token.SignedString(h.Secret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "gagal membuat token", nil)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+strconv.FormatInt(user.ID, 10))
	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}
