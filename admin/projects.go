package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/models"
	"folio/ordering"
)

func (a *AdminModule) listProjects(c *gin.Context) {
	var projects []models.Project
	if err := a.db.Order("position ASC").Find(&projects).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading projects",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_projects.html", gin.H{
		"projects": projects,
	})
}

func (a *AdminModule) newProject(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_project_form.html", gin.H{})
}

func (a *AdminModule) createProject(c *gin.Context) {
	admin := currentAdmin(c)

	var form ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_project_form.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	slug := form.Slug
	if slug == "" {
		slug = generateSlug(form.Title)
	}

	project := models.Project{
		OwnerID:  admin.ID,
		Title:    form.Title,
		Slug:     slug,
		Summary:  form.Summary,
		Content:  form.Content,
		ImageURL: form.ImageURL,
		RepoURL:  form.RepoURL,
		DemoURL:  form.DemoURL,
		Tags:     form.Tags,
	}

	// The position read and the insert share one transaction so concurrent
	// creates cannot be handed the same slot.
	err := a.db.Transaction(func(tx *gorm.DB) error {
		position, err := ordering.Next(tx, &models.Project{})
		if err != nil {
			return err
		}
		project.Position = position
		return tx.Create(&project).Error
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error creating project",
		})
		return
	}

	a.invalidatePublic("/", "/projects/"+project.Slug)
	c.Redirect(http.StatusFound, "/admin/projects")
}

func (a *AdminModule) editProject(c *gin.Context) {
	var project models.Project
	if err := a.db.First(&project, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Project not found",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_project_form.html", gin.H{
		"project": project,
	})
}

func (a *AdminModule) updateProject(c *gin.Context) {
	var project models.Project
	if err := a.db.First(&project, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Project not found",
		})
		return
	}

	var form ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_project_form.html", gin.H{
			"errors":  fieldErrors(err),
			"form":    form,
			"project": project,
		})
		return
	}

	oldSlug := project.Slug

	project.Title = form.Title
	if form.Slug != "" {
		project.Slug = form.Slug
	} else {
		project.Slug = generateSlug(form.Title)
	}
	project.Summary = form.Summary
	project.Content = form.Content
	project.ImageURL = form.ImageURL
	project.RepoURL = form.RepoURL
	project.DemoURL = form.DemoURL
	project.Tags = form.Tags

	if err := a.db.Save(&project).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error updating project",
		})
		return
	}

	a.invalidatePublic("/", "/projects/"+oldSlug, "/projects/"+project.Slug)
	c.Redirect(http.StatusFound, "/admin/projects")
}

func (a *AdminModule) deleteProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var project models.Project
	a.db.First(&project, id)

	if err := ordering.Delete(a.db, &models.Project{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting project"})
		return
	}

	a.invalidatePublic("/", "/projects/"+project.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) toggleProjectPublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	published, err := ordering.TogglePublished(a.db, &models.Project{}, id)
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating project"})
		return
	}

	var project models.Project
	a.db.First(&project, id)

	a.invalidatePublic("/", "/projects/"+project.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true, "published": published})
}

func (a *AdminModule) toggleProjectArchived(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	archived, err := ordering.ToggleFlag(a.db, &models.Project{}, id, "archived")
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating project"})
		return
	}

	var project models.Project
	a.db.First(&project, id)

	a.invalidatePublic("/", "/projects/"+project.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true, "archived": archived})
}

func (a *AdminModule) reorderProjects(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reorder payload"})
		return
	}

	if err := ordering.Reorder(a.db, &models.Project{}, assignments); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "A project in the list no longer exists, refresh and try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reordering projects"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
