package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"folio/analytics"
	"folio/database"
	"folio/models"
)

// A cheap hash for fixtures; production hashing uses a real cost.
var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err := database.RunMigrations(db); err != nil {
		panic(err)
	}
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("folio-session", store))

	module := NewAdminModule(db, analytics.NewAnalyticsModule(nil))
	module.RegisterRoutes(router)
	return router
}

func createTestAdmin(db *gorm.DB) *models.Admin {
	admin := models.Admin{
		Email:        "admin@example.com",
		PasswordHash: testPasswordHash,
	}
	db.Create(&admin)
	return &admin
}

// login posts the fixture credentials and returns the session cookies for
// follow-up requests.
func login(t *testing.T, router *gin.Engine) []*http.Cookie {
	form := url.Values{}
	form.Set("email", "admin@example.com")
	form.Set("password", "password123")

	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/", w.Header().Get("Location"))

	return w.Result().Cookies()
}

func authedRequest(router *gin.Engine, cookies []*http.Cookie, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func formBody(values url.Values) *bytes.Buffer {
	return bytes.NewBufferString(values.Encode())
}

func TestCreateSkillAssignsSequentialPositions(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	for _, name := range []string{"Go", "SQL", "Docker"} {
		form := url.Values{}
		form.Set("name", name)
		form.Set("category", "backend")

		w := authedRequest(router, cookies, "POST", "/admin/skills",
			formBody(form), "application/x-www-form-urlencoded")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin/skills", w.Header().Get("Location"))
	}

	var skills []models.Skill
	db.Order("position ASC").Find(&skills)

	assert.Equal(t, 3, len(skills))
	assert.Equal(t, 0, skills[0].Position)
	assert.Equal(t, 1, skills[1].Position)
	assert.Equal(t, 2, skills[2].Position)
	assert.Equal(t, "Go", skills[0].Name)
	assert.True(t, skills[0].Published)
}

func TestDeleteSkillKeepsSurvivorPositions(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	admin := createTestAdmin(db)
	cookies := login(t, router)

	a := models.Skill{OwnerID: admin.ID, Name: "Go", Position: 0, Published: true}
	b := models.Skill{OwnerID: admin.ID, Name: "SQL", Position: 1, Published: true}
	c := models.Skill{OwnerID: admin.ID, Name: "Docker", Position: 2, Published: true}
	db.Create(&a)
	db.Create(&b)
	db.Create(&c)

	w := authedRequest(router, cookies, "DELETE", "/admin/skills/"+itoa(a.ID), nil, "")

	assert.Equal(t, http.StatusOK, w.Code)

	var skills []models.Skill
	db.Order("position ASC").Find(&skills)

	assert.Equal(t, 2, len(skills))
	assert.Equal(t, 1, skills[0].Position)
	assert.Equal(t, 2, skills[1].Position)
}

func TestDeleteSkillNotFound(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	w := authedRequest(router, cookies, "DELETE", "/admin/skills/999", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleSkillPublished(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	admin := createTestAdmin(db)
	cookies := login(t, router)

	skill := models.Skill{OwnerID: admin.ID, Name: "Go", Published: true}
	db.Create(&skill)

	w := authedRequest(router, cookies, "POST", "/admin/skills/"+itoa(skill.ID)+"/publish", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["published"])

	w = authedRequest(router, cookies, "POST", "/admin/skills/"+itoa(skill.ID)+"/publish", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["published"])
}

func TestTogglePublishedNotFoundCreatesNothing(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	w := authedRequest(router, cookies, "POST", "/admin/skills/999/publish", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.Skill{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReorderProjects(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	admin := createTestAdmin(db)
	cookies := login(t, router)

	a := models.Project{OwnerID: admin.ID, Title: "Alpha", Slug: "alpha", Position: 0}
	b := models.Project{OwnerID: admin.ID, Title: "Beta", Slug: "beta", Position: 1}
	c := models.Project{OwnerID: admin.ID, Title: "Gamma", Slug: "gamma", Position: 2}
	db.Create(&a)
	db.Create(&b)
	db.Create(&c)

	payload, _ := json.Marshal([]map[string]int{
		{"id": c.ID, "position": 0},
		{"id": a.ID, "position": 1},
		{"id": b.ID, "position": 2},
	})

	w := authedRequest(router, cookies, "POST", "/admin/projects/reorder",
		bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusOK, w.Code)

	var projects []models.Project
	db.Order("position ASC").Find(&projects)
	assert.Equal(t, "Gamma", projects[0].Title)
	assert.Equal(t, "Alpha", projects[1].Title)
	assert.Equal(t, "Beta", projects[2].Title)
}

func TestReorderProjectsMissingIDRollsBack(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	admin := createTestAdmin(db)
	cookies := login(t, router)

	a := models.Project{OwnerID: admin.ID, Title: "Alpha", Slug: "alpha", Position: 0}
	b := models.Project{OwnerID: admin.ID, Title: "Beta", Slug: "beta", Position: 1}
	db.Create(&a)
	db.Create(&b)

	payload, _ := json.Marshal([]map[string]int{
		{"id": b.ID, "position": 0},
		{"id": 9999, "position": 1},
	})

	w := authedRequest(router, cookies, "POST", "/admin/projects/reorder",
		bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var projects []models.Project
	db.Order("position ASC").Find(&projects)
	assert.Equal(t, "Alpha", projects[0].Title)
	assert.Equal(t, 0, projects[0].Position)
	assert.Equal(t, "Beta", projects[1].Title)
	assert.Equal(t, 1, projects[1].Position)
}

func TestReorderInvalidPayload(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	w := authedRequest(router, cookies, "POST", "/admin/projects/reorder",
		bytes.NewBufferString(`{"not": "a list"}`), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleProjectArchived(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	admin := createTestAdmin(db)
	cookies := login(t, router)

	project := models.Project{OwnerID: admin.ID, Title: "Alpha", Slug: "alpha"}
	db.Create(&project)

	w := authedRequest(router, cookies, "POST", "/admin/projects/"+itoa(project.ID)+"/archive", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Project
	db.First(&reloaded, project.ID)
	assert.True(t, reloaded.Archived)
	assert.False(t, reloaded.Published)
}

func TestTogglePostPublishedStampsPublishedAt(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	admin := createTestAdmin(db)
	cookies := login(t, router)

	post := models.BlogPost{OwnerID: admin.ID, Title: "Hello", Slug: "hello"}
	db.Create(&post)
	assert.Nil(t, post.PublishedAt)

	w := authedRequest(router, cookies, "POST", "/admin/posts/"+itoa(post.ID)+"/publish", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var published models.BlogPost
	db.First(&published, post.ID)
	assert.True(t, published.Published)
	assert.NotNil(t, published.PublishedAt)

	firstStamp := *published.PublishedAt

	// Unpublish and republish; the original timestamp survives.
	authedRequest(router, cookies, "POST", "/admin/posts/"+itoa(post.ID)+"/publish", nil, "")
	authedRequest(router, cookies, "POST", "/admin/posts/"+itoa(post.ID)+"/publish", nil, "")

	var again models.BlogPost
	db.First(&again, post.ID)
	assert.True(t, again.Published)
	assert.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstStamp.Unix(), again.PublishedAt.Unix())
}

func TestToggleMessageRead(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	createTestAdmin(db)
	cookies := login(t, router)

	message := models.ContactMessage{Name: "Visitor", Email: "v@example.com", Body: "Hi"}
	db.Create(&message)

	w := authedRequest(router, cookies, "POST", "/admin/messages/"+itoa(message.ID)+"/read", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.ContactMessage
	db.First(&reloaded, message.ID)
	assert.True(t, reloaded.Read)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
