package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/models"
	"folio/ordering"
)

func (a *AdminModule) listSkills(c *gin.Context) {
	var skills []models.Skill
	if err := a.db.Order("position ASC").Find(&skills).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading skills",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_skills.html", gin.H{
		"skills": skills,
	})
}

func (a *AdminModule) createSkill(c *gin.Context) {
	admin := currentAdmin(c)

	var form SkillForm
	if err := c.ShouldBind(&form); err != nil {
		var skills []models.Skill
		a.db.Order("position ASC").Find(&skills)
		c.HTML(http.StatusBadRequest, "admin_skills.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
			"skills": skills,
		})
		return
	}

	skill := models.Skill{
		OwnerID:   admin.ID,
		Name:      form.Name,
		Category:  form.Category,
		Level:     form.Level,
		IconURL:   form.IconURL,
		Published: true,
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		position, err := ordering.Next(tx, &models.Skill{})
		if err != nil {
			return err
		}
		skill.Position = position
		return tx.Create(&skill).Error
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error creating skill",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/skills")
}

func (a *AdminModule) updateSkill(c *gin.Context) {
	var skill models.Skill
	if err := a.db.First(&skill, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Skill not found",
		})
		return
	}

	var form SkillForm
	if err := c.ShouldBind(&form); err != nil {
		var skills []models.Skill
		a.db.Order("position ASC").Find(&skills)
		c.HTML(http.StatusBadRequest, "admin_skills.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
			"skills": skills,
		})
		return
	}

	skill.Name = form.Name
	skill.Category = form.Category
	skill.Level = form.Level
	skill.IconURL = form.IconURL

	if err := a.db.Save(&skill).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error updating skill",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/skills")
}

func (a *AdminModule) deleteSkill(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := ordering.Delete(a.db, &models.Skill{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting skill"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) toggleSkillPublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	published, err := ordering.TogglePublished(a.db, &models.Skill{}, id)
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating skill"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true, "published": published})
}

func (a *AdminModule) reorderSkills(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reorder payload"})
		return
	}

	if err := ordering.Reorder(a.db, &models.Skill{}, assignments); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "A skill in the list no longer exists, refresh and try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reordering skills"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
