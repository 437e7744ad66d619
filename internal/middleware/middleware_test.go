package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/db"
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils"
)

const secret = "middleware-secret"

func newEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	s := store.New(gdb, nil)
	r := gin.New()
	r.Use(RequestLogger())
	authed := r.Group("", JWTAuthMiddleware(secret), ActiveUserMiddleware(s))
	authed.GET("/me", func(c *gin.Context) {
		user := c.MustGet(UserKey).(*domain.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	authed.GET("/admin", SuperuserOnlyMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, gdb
}

func get(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, gdb *gorm.DB, u domain.User) string {
	t.Helper()
	require.NoError(t, gdb.Create(&u).Error)
	token, err := utils.GenerateJWT(u.ID, secret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	r, gdb := newEngine(t)
	token := seed(t, gdb, domain.User{Email: "a@example.com", PasswordHash: "x", IsActive: true})

	assert.Equal(t, http.StatusOK, get(r, "/me", "Bearer "+token).Code)
	assert.Equal(t, http.StatusOK, get(r, "/me", "bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer ").Code)

	other, err := utils.GenerateJWT(1, "another-secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+other).Code)
}

func TestActiveUserMiddleware(t *testing.T) {
	r, gdb := newEngine(t)
	inactive := seed(t, gdb, domain.User{Email: "off@example.com", PasswordHash: "x"})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+inactive).Code)

	ghost, err := utils.GenerateJWT(4242, secret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+ghost).Code)
}

func TestSuperuserOnlyMiddleware(t *testing.T) {
	r, gdb := newEngine(t)
	plain := seed(t, gdb, domain.User{Email: "u@example.com", PasswordHash: "x", IsActive: true})
	root := seed(t, gdb, domain.User{Email: "root@example.com", PasswordHash: "x", IsActive: true, IsSuperuser: true})

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+plain).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer "+root).Code)
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTimeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
}
