package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/models"
)

func (a *AdminModule) settingsPage(c *gin.Context) {
	settings, err := a.loadSettings()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading settings",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_settings.html", gin.H{
		"settings": settings,
	})
}

func (a *AdminModule) updateSettings(c *gin.Context) {
	settings, err := a.loadSettings()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading settings",
		})
		return
	}

	var form SettingsForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_settings.html", gin.H{
			"errors":   fieldErrors(err),
			"form":     form,
			"settings": settings,
		})
		return
	}

	settings.SiteTitle = form.SiteTitle
	settings.Tagline = form.Tagline
	settings.About = form.About
	settings.Email = form.Email
	settings.GithubURL = form.GithubURL
	settings.LinkedinURL = form.LinkedinURL
	settings.AvatarURL = form.AvatarURL

	if err := a.db.Save(settings).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error saving settings",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/settings")
}

// loadSettings returns the single settings row, creating it on first use.
func (a *AdminModule) loadSettings() (*models.Settings, error) {
	var settings models.Settings
	err := a.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.Settings{SiteTitle: "My Portfolio"}
		if err := a.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
