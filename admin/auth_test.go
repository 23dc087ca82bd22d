package admin

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/models"
)

func TestRequireAuthRedirectsToLogin(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)

	req := httptest.NewRequest("DELETE", "/admin/skills/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginGrantsAccess(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	// A protected JSON endpoint now answers instead of redirecting.
	w := authedRequest(router, cookies, "DELETE", "/admin/skills/999", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginPageRedirectsToSetupWithoutAdmin(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	req := httptest.NewRequest("GET", "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/setup", w.Header().Get("Location"))
}

func TestSetupCreatesAdminAndSettings(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	form := url.Values{}
	form.Set("email", "owner@example.com")
	form.Set("password", "longenough1")

	req := httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/", w.Header().Get("Location"))

	var admin models.Admin
	assert.NoError(t, db.First(&admin).Error)
	assert.Equal(t, "owner@example.com", admin.Email)
	assert.NotEqual(t, "longenough1", admin.PasswordHash)
	assert.True(t, checkPasswordHash("longenough1", admin.PasswordHash))

	var settings models.Settings
	assert.NoError(t, db.First(&settings).Error)
	assert.Equal(t, "owner@example.com", settings.Email)
}

func TestSetupLockedAfterFirstAdmin(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)

	form := url.Values{}
	form.Set("email", "intruder@example.com")
	form.Set("password", "longenough1")

	req := httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLogoutRedirects(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	w := authedRequest(router, cookies, "GET", "/admin/logout", nil, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := hashPassword("secret-password")

	assert.NoError(t, err)
	assert.True(t, checkPasswordHash("secret-password", hash))
	assert.False(t, checkPasswordHash("wrong-password", hash))
}
