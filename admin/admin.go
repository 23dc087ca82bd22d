package admin

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"folio/analytics"
	"folio/cache"
	"folio/models"
)

type AdminModule struct {
	db        *gorm.DB
	analytics *analytics.AnalyticsModule
}

func NewAdminModule(db *gorm.DB, analyticsModule *analytics.AnalyticsModule) *AdminModule {
	return &AdminModule{
		db:        db,
		analytics: analyticsModule,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", a.loginPage)
	router.POST("/login", a.loginPost)
	router.GET("/setup", a.setupPage)
	router.POST("/setup", a.setupPost)
	router.GET("/admin/logout", a.logout)

	adminGroup := router.Group("/admin")
	adminGroup.Use(a.requireAuth)
	{
		adminGroup.GET("/", a.dashboard)

		adminGroup.GET("/projects", a.listProjects)
		adminGroup.GET("/projects/new", a.newProject)
		adminGroup.POST("/projects", a.createProject)
		adminGroup.GET("/projects/:id", a.editProject)
		adminGroup.POST("/projects/:id", a.updateProject)
		adminGroup.DELETE("/projects/:id", a.deleteProject)
		adminGroup.POST("/projects/:id/publish", a.toggleProjectPublished)
		adminGroup.POST("/projects/:id/archive", a.toggleProjectArchived)
		adminGroup.POST("/projects/reorder", a.reorderProjects)

		adminGroup.GET("/skills", a.listSkills)
		adminGroup.POST("/skills", a.createSkill)
		adminGroup.POST("/skills/:id", a.updateSkill)
		adminGroup.DELETE("/skills/:id", a.deleteSkill)
		adminGroup.POST("/skills/:id/publish", a.toggleSkillPublished)
		adminGroup.POST("/skills/reorder", a.reorderSkills)

		adminGroup.GET("/experience", a.listExperiences)
		adminGroup.POST("/experience", a.createExperience)
		adminGroup.POST("/experience/:id", a.updateExperience)
		adminGroup.DELETE("/experience/:id", a.deleteExperience)
		adminGroup.POST("/experience/:id/publish", a.toggleExperiencePublished)
		adminGroup.POST("/experience/reorder", a.reorderExperiences)

		adminGroup.GET("/education", a.listEducations)
		adminGroup.POST("/education", a.createEducation)
		adminGroup.POST("/education/:id", a.updateEducation)
		adminGroup.DELETE("/education/:id", a.deleteEducation)
		adminGroup.POST("/education/:id/publish", a.toggleEducationPublished)
		adminGroup.POST("/education/reorder", a.reorderEducations)

		adminGroup.GET("/certificates", a.listCertificates)
		adminGroup.POST("/certificates", a.createCertificate)
		adminGroup.POST("/certificates/:id", a.updateCertificate)
		adminGroup.DELETE("/certificates/:id", a.deleteCertificate)
		adminGroup.POST("/certificates/:id/publish", a.toggleCertificatePublished)
		adminGroup.POST("/certificates/reorder", a.reorderCertificates)

		adminGroup.GET("/posts", a.listPosts)
		adminGroup.GET("/posts/new", a.newPost)
		adminGroup.POST("/posts", a.createPost)
		adminGroup.GET("/posts/:id", a.editPost)
		adminGroup.POST("/posts/:id", a.updatePost)
		adminGroup.DELETE("/posts/:id", a.deletePost)
		adminGroup.POST("/posts/:id/publish", a.togglePostPublished)

		adminGroup.GET("/messages", a.listMessages)
		adminGroup.POST("/messages/:id/read", a.toggleMessageRead)
		adminGroup.DELETE("/messages/:id", a.deleteMessage)

		adminGroup.GET("/settings", a.settingsPage)
		adminGroup.POST("/settings", a.updateSettings)

		adminGroup.POST("/uploads", a.upload)
	}
}

// requireAuth resolves the session into an Admin row once and stores it in
// the request context; handlers downstream read the identity from there
// instead of touching session state themselves.
func (a *AdminModule) requireAuth(c *gin.Context) {
	session := sessions.Default(c)
	adminID := session.Get("admin_id")

	if adminID == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	var admin models.Admin
	if err := a.db.First(&admin, adminID).Error; err != nil {
		session.Clear()
		session.Save()
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set("admin", &admin)
	c.Next()
}

func currentAdmin(c *gin.Context) *models.Admin {
	value, _ := c.Get("admin")
	admin, _ := value.(*models.Admin)
	return admin
}

func (a *AdminModule) loginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("admin_id") != nil {
		c.Redirect(http.StatusFound, "/admin/")
		return
	}

	var count int64
	a.db.Model(&models.Admin{}).Count(&count)
	if count == 0 {
		c.Redirect(http.StatusFound, "/setup")
		return
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

func (a *AdminModule) loginPost(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var admin models.Admin
	if err := a.db.Where("email = ?", email).First(&admin).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"error": "Incorrect email or password",
			"email": email,
		})
		return
	}

	if !checkPasswordHash(password, admin.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"error": "Incorrect email or password",
			"email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("admin_id", admin.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/admin/")
}

// setupPage is only reachable while no admin account exists; after the first
// account is created it permanently redirects to the login page.
func (a *AdminModule) setupPage(c *gin.Context) {
	var count int64
	a.db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "admin_setup.html", gin.H{})
}

func (a *AdminModule) setupPost(c *gin.Context) {
	var count int64
	a.db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || len(password) < 8 {
		c.HTML(http.StatusBadRequest, "admin_setup.html", gin.H{
			"error": "Email is required and the password needs at least 8 characters",
			"email": email,
		})
		return
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_setup.html", gin.H{
			"error": "Error creating account",
			"email": email,
		})
		return
	}

	admin := models.Admin{
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := a.db.Create(&admin).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_setup.html", gin.H{
			"error": "Error creating account",
			"email": email,
		})
		return
	}

	// Seed the settings row so the public site has something to render.
	var settings models.Settings
	if err := a.db.First(&settings).Error; err == gorm.ErrRecordNotFound {
		a.db.Create(&models.Settings{SiteTitle: "My Portfolio", Email: email})
	}

	session := sessions.Default(c)
	session.Set("admin_id", admin.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/admin/")
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/login")
}

func (a *AdminModule) dashboard(c *gin.Context) {
	admin := currentAdmin(c)

	counts := gin.H{}
	for name, model := range map[string]interface{}{
		"projects":     &models.Project{},
		"skills":       &models.Skill{},
		"experience":   &models.Experience{},
		"education":    &models.Education{},
		"certificates": &models.Certificate{},
		"posts":        &models.BlogPost{},
	} {
		var count int64
		a.db.Model(model).Count(&count)
		counts[name] = count
	}

	var unread int64
	a.db.Model(&models.ContactMessage{}).Where("read = ?", false).Count(&unread)

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"admin":       admin,
		"counts":      counts,
		"unread":      unread,
		"totalVisits": a.analytics.GetTotalVisits(),
		"visitsByDay": a.analytics.GetVisitsByDay(15),
		"topPages":    a.analytics.GetTopPages(30, 10),
	})
}

// invalidatePublic drops the cached renderings of the given public pages
// after a mutation; the next request re-renders them.
func (a *AdminModule) invalidatePublic(paths ...string) {
	for _, path := range paths {
		if err := cache.Invalidate(path); err != nil {
			log.Printf("Error invalidating cache for %s: %v", path, err)
		}
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
