package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/config"
	"github.com/rentgrid/car-rental-api/internal/middleware"
)

func authRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := gin.New()
	r.POST("/api/auth/refresh", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
	}, NewAuthHandler(db, cfg).Refresh)
	return r
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("issues a fresh token from the stored profile", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WithArgs("user-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
				AddRow("user-1", "jane@example.com", "hash"))

		mock.ExpectQuery(`SELECT \* FROM "profiles" WHERE id = \$1`).
			WithArgs("user-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "role", "tenant_id"}).
				AddRow("user-1", "Jane Renter", "client_admin", "tenant-1"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		authRouter(db).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")

		var resp struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "user-1", claims["sub"])
		assert.Equal(t, "tenant-1", claims["tenantId"])
		assert.Equal(t, "client_admin", claims["role"])
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		db, mock := newMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WithArgs("user-1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		authRouter(db).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "user_not_found")
	})
}
