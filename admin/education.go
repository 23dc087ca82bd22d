package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/models"
	"folio/ordering"
)

func (a *AdminModule) listEducations(c *gin.Context) {
	var educations []models.Education
	if err := a.db.Order("position ASC").Find(&educations).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading education entries",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_education.html", gin.H{
		"educations": educations,
	})
}

func (a *AdminModule) createEducation(c *gin.Context) {
	admin := currentAdmin(c)

	var form EducationForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_education.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	startDate, err := parseDate(form.StartDate)
	if err != nil || startDate == nil {
		c.HTML(http.StatusBadRequest, "admin_education.html", gin.H{
			"errors": map[string]string{"startdate": "Must be a date in YYYY-MM-DD format"},
			"form":   form,
		})
		return
	}

	endDate, err := parseDate(form.EndDate)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_education.html", gin.H{
			"errors": map[string]string{"enddate": "Must be a date in YYYY-MM-DD format"},
			"form":   form,
		})
		return
	}

	education := models.Education{
		OwnerID:     admin.ID,
		School:      form.School,
		Degree:      form.Degree,
		Field:       form.Field,
		StartDate:   *startDate,
		EndDate:     endDate,
		Description: form.Description,
		Published:   true,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		position, err := ordering.Next(tx, &models.Education{})
		if err != nil {
			return err
		}
		education.Position = position
		return tx.Create(&education).Error
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error creating education entry",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/education")
}

func (a *AdminModule) updateEducation(c *gin.Context) {
	var education models.Education
	if err := a.db.First(&education, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Education entry not found",
		})
		return
	}

	var form EducationForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_education.html", gin.H{
			"errors":    fieldErrors(err),
			"form":      form,
			"education": education,
		})
		return
	}

	startDate, err := parseDate(form.StartDate)
	if err != nil || startDate == nil {
		c.HTML(http.StatusBadRequest, "admin_education.html", gin.H{
			"errors":    map[string]string{"startdate": "Must be a date in YYYY-MM-DD format"},
			"form":      form,
			"education": education,
		})
		return
	}

	endDate, err := parseDate(form.EndDate)
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_education.html", gin.H{
			"errors":    map[string]string{"enddate": "Must be a date in YYYY-MM-DD format"},
			"form":      form,
			"education": education,
		})
		return
	}

	education.School = form.School
	education.Degree = form.Degree
	education.Field = form.Field
	education.StartDate = *startDate
	education.EndDate = endDate
	education.Description = form.Description

	if err := a.db.Save(&education).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error updating education entry",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/education")
}

func (a *AdminModule) deleteEducation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := ordering.Delete(a.db, &models.Education{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Education entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting education entry"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) toggleEducationPublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	published, err := ordering.TogglePublished(a.db, &models.Education{}, id)
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Education entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating education entry"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true, "published": published})
}

func (a *AdminModule) reorderEducations(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reorder payload"})
		return
	}

	if err := ordering.Reorder(a.db, &models.Education{}, assignments); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "An entry in the list no longer exists, refresh and try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reordering education entries"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
