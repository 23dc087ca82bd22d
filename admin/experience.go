package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/models"
	"folio/ordering"
)

func (a *AdminModule) listExperiences(c *gin.Context) {
	var experiences []models.Experience
	if err := a.db.Order("position ASC").Find(&experiences).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading experience entries",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_experience.html", gin.H{
		"experiences": experiences,
	})
}

func (a *AdminModule) createExperience(c *gin.Context) {
	admin := currentAdmin(c)

	var form ExperienceForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_experience.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	startDate, err := parseDate(form.StartDate)
	if err != nil || startDate == nil {
		c.HTML(http.StatusBadRequest, "admin_experience.html", gin.H{
			"errors": map[string]string{"startdate": "Must be a date in YYYY-MM-DD format"},
			"form":   form,
		})
		return
	}

	endDate, err := parseDate(form.EndDate)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_experience.html", gin.H{
			"errors": map[string]string{"enddate": "Must be a date in YYYY-MM-DD format"},
			"form":   form,
		})
		return
	}

	experience := models.Experience{
		OwnerID:     admin.ID,
		Company:     form.Company,
		Role:        form.Role,
		Location:    form.Location,
		StartDate:   *startDate,
		EndDate:     endDate,
		Description: form.Description,
		Published:   true,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		position, err := ordering.Next(tx, &models.Experience{})
		if err != nil {
			return err
		}
		experience.Position = position
		return tx.Create(&experience).Error
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error creating experience entry",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/experience")
}

func (a *AdminModule) updateExperience(c *gin.Context) {
	var experience models.Experience
	if err := a.db.First(&experience, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Experience entry not found",
		})
		return
	}

	var form ExperienceForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_experience.html", gin.H{
			"errors":     fieldErrors(err),
			"form":       form,
			"experience": experience,
		})
		return
	}

	startDate, err := parseDate(form.StartDate)
	if err != nil || startDate == nil {
		c.HTML(http.StatusBadRequest, "admin_experience.html", gin.H{
			"errors":     map[string]string{"startdate": "Must be a date in YYYY-MM-DD format"},
			"form":       form,
			"experience": experience,
		})
		return
	}

	endDate, err := parseDate(form.EndDate)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_experience.html", gin.H{
			"errors":     map[string]string{"enddate": "Must be a date in YYYY-MM-DD format"},
			"form":       form,
			"experience": experience,
		})
		return
	}

	experience.Company = form.Company
	experience.Role = form.Role
	experience.Location = form.Location
	experience.StartDate = *startDate
	experience.EndDate = endDate
	experience.Description = form.Description

	if err := a.db.Save(&experience).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error updating experience entry",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/experience")
}

func (a *AdminModule) deleteExperience(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := ordering.Delete(a.db, &models.Experience{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Experience entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting experience entry"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) toggleExperiencePublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	published, err := ordering.TogglePublished(a.db, &models.Experience{}, id)
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Experience entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating experience entry"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true, "published": published})
}

func (a *AdminModule) reorderExperiences(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reorder payload"})
		return
	}

	if err := ordering.Reorder(a.db, &models.Experience{}, assignments); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "An entry in the list no longer exists, refresh and try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reordering experience entries"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
