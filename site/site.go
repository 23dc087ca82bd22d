package site

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"folio/analytics"
	emailpkg "folio/email"
	"folio/models"
)

type SiteModule struct {
	db        *gorm.DB
	analytics *analytics.AnalyticsModule
	email     *emailpkg.EmailService
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func NewSiteModule(db *gorm.DB, analyticsModule *analytics.AnalyticsModule) *SiteModule {
	return &SiteModule{
		db:        db,
		analytics: analyticsModule,
		email:     emailpkg.NewEmailService(),
	}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.home)
	router.GET("/projects/:slug", s.project)
	router.GET("/blog", s.blogIndex)
	router.GET("/blog/:slug", s.blogPost)
	router.POST("/contact", s.contact)
	router.GET("/sitemap.xml", s.sitemap)
}

// home renders the whole portfolio: every published collection ascending by
// position. Unpublished and archived records never reach this page.
func (s *SiteModule) home(c *gin.Context) {
	settings := s.loadSettings()

	var skills []models.Skill
	s.db.Where("published = ?", true).Order("position ASC").Find(&skills)

	var projects []models.Project
	s.db.Where("published = ? AND archived = ?", true, false).
		Order("position ASC").Find(&projects)

	var experiences []models.Experience
	s.db.Where("published = ?", true).Order("position ASC").Find(&experiences)

	var educations []models.Education
	s.db.Where("published = ?", true).Order("position ASC").Find(&educations)

	var certificates []models.Certificate
	s.db.Where("published = ?", true).Order("position ASC").Find(&certificates)

	var recentPosts []models.BlogPost
	s.db.Where("published = ?", true).Order("published_at DESC").Limit(3).Find(&recentPosts)

	s.analytics.TrackVisit(c, "/")

	c.HTML(http.StatusOK, "site_home.html", gin.H{
		"settings":     settings,
		"aboutHTML":    template.HTML(renderMarkdown(settings.About)),
		"skills":       skills,
		"projects":     projects,
		"experiences":  experiences,
		"educations":   educations,
		"certificates": certificates,
		"recentPosts":  recentPosts,
		"sent":         c.Query("sent") == "1",
	})
}

func (s *SiteModule) project(c *gin.Context) {
	slug := c.Param("slug")

	var project models.Project
	err := s.db.Where("slug = ? AND published = ? AND archived = ?", slug, true, false).
		First(&project).Error
	if err != nil {
		c.HTML(http.StatusNotFound, "site_error.html", gin.H{
			"error": "Project not found",
		})
		return
	}

	s.analytics.TrackVisit(c, "/projects/"+slug)

	c.HTML(http.StatusOK, "site_project.html", gin.H{
		"settings":    s.loadSettings(),
		"project":     project,
		"contentHTML": template.HTML(renderMarkdown(project.Content)),
		"tags":        splitTags(project.Tags),
	})
}

func (s *SiteModule) blogIndex(c *gin.Context) {
	var posts []models.BlogPost
	if err := s.db.Where("published = ?", true).
		Order("published_at DESC").
		Find(&posts).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "site_error.html", gin.H{
			"error": "Error loading posts",
		})
		return
	}

	s.analytics.TrackVisit(c, "/blog")

	c.HTML(http.StatusOK, "site_blog.html", gin.H{
		"settings": s.loadSettings(),
		"posts":    posts,
	})
}

func (s *SiteModule) blogPost(c *gin.Context) {
	slug := c.Param("slug")

	var post models.BlogPost
	err := s.db.Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		c.HTML(http.StatusNotFound, "site_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	s.analytics.TrackVisit(c, "/blog/"+slug)

	c.HTML(http.StatusOK, "site_post.html", gin.H{
		"settings":    s.loadSettings(),
		"post":        post,
		"contentHTML": template.HTML(renderMarkdown(post.Content)),
	})
}

type ContactForm struct {
	Name    string `form:"name" binding:"required,max=200"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"max=200"`
	Body    string `form:"body" binding:"required,max=5000"`
}

func (s *SiteModule) contact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "site_contact.html", gin.H{
			"settings": s.loadSettings(),
			"error":    "Please fill in your name, a valid email address and a message",
			"form":     form,
		})
		return
	}

	message := models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Body:    form.Body,
	}

	if err := s.db.Create(&message).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "site_contact.html", gin.H{
			"settings": s.loadSettings(),
			"error":    "Error sending your message, please try again",
			"form":     form,
		})
		return
	}

	// Notify the owner asynchronously; a broken SMTP setup must not lose
	// the message, it is already stored.
	settings := s.loadSettings()
	go func(to string, msg models.ContactMessage) {
		if err := s.email.SendContactNotification(to, msg); err != nil {
			log.Printf("Error sending contact notification: %v", err)
		}
	}(settings.Email, message)

	c.Redirect(http.StatusFound, "/?sent=1")
}

func (s *SiteModule) sitemap(c *gin.Context) {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "http://localhost"
	}
	domain = strings.TrimSuffix(domain, "/")

	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	sitemap.WriteString("  <url>\n")
	sitemap.WriteString("    <loc>" + domain + "/</loc>\n")
	sitemap.WriteString("    <changefreq>weekly</changefreq>\n")
	sitemap.WriteString("    <priority>1.0</priority>\n")
	sitemap.WriteString("  </url>\n")

	sitemap.WriteString("  <url>\n")
	sitemap.WriteString("    <loc>" + domain + "/blog</loc>\n")
	sitemap.WriteString("    <changefreq>weekly</changefreq>\n")
	sitemap.WriteString("    <priority>0.8</priority>\n")
	sitemap.WriteString("  </url>\n")

	var projects []models.Project
	s.db.Where("published = ? AND archived = ?", true, false).Find(&projects)

	for _, project := range projects {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString("    <loc>" + domain + "/projects/" + project.Slug + "</loc>\n")
		sitemap.WriteString("    <lastmod>" + project.UpdatedAt.Format(time.RFC3339) + "</lastmod>\n")
		sitemap.WriteString("    <changefreq>monthly</changefreq>\n")
		sitemap.WriteString("    <priority>0.7</priority>\n")
		sitemap.WriteString("  </url>\n")
	}

	var posts []models.BlogPost
	s.db.Where("published = ?", true).Find(&posts)

	for _, post := range posts {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString("    <loc>" + domain + "/blog/" + post.Slug + "</loc>\n")
		sitemap.WriteString("    <lastmod>" + post.UpdatedAt.Format(time.RFC3339) + "</lastmod>\n")
		sitemap.WriteString("    <changefreq>monthly</changefreq>\n")
		sitemap.WriteString("    <priority>0.6</priority>\n")
		sitemap.WriteString("  </url>\n")
	}

	sitemap.WriteString("</urlset>\n")

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, sitemap.String())
}

func (s *SiteModule) loadSettings() models.Settings {
	var settings models.Settings
	if err := s.db.First(&settings).Error; err != nil {
		return models.Settings{SiteTitle: "Portfolio"}
	}
	return settings
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// Fall back to the raw content rather than breaking the page.
		return content
	}
	return buf.String()
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}

	var out []string
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
