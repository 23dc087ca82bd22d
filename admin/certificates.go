package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"folio/models"
	"folio/ordering"
)

func (a *AdminModule) listCertificates(c *gin.Context) {
	var certificates []models.Certificate
	if err := a.db.Order("position ASC").Find(&certificates).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading certificates",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_certificates.html", gin.H{
		"certificates": certificates,
	})
}

func (a *AdminModule) createCertificate(c *gin.Context) {
	admin := currentAdmin(c)

	var form CertificateForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_certificates.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	issueDate, err := parseDate(form.IssueDate)
	if err != nil || issueDate == nil {
		c.HTML(http.StatusBadRequest, "admin_certificates.html", gin.H{
			"errors": map[string]string{"issuedate": "Must be a date in YYYY-MM-DD format"},
			"form":   form,
		})
		return
	}

	certificate := models.Certificate{
		OwnerID:       admin.ID,
		Title:         form.Title,
		Issuer:        form.Issuer,
		IssueDate:     *issueDate,
		CredentialURL: form.CredentialURL,
		ImageURL:      form.ImageURL,
		Published:     true,
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		position, err := ordering.Next(tx, &models.Certificate{})
		if err != nil {
			return err
		}
		certificate.Position = position
		return tx.Create(&certificate).Error
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error creating certificate",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/certificates")
}

func (a *AdminModule) updateCertificate(c *gin.Context) {
	var certificate models.Certificate
	if err := a.db.First(&certificate, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Certificate not found",
		})
		return
	}

	var form CertificateForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_certificates.html", gin.H{
			"errors":      fieldErrors(err),
			"form":        form,
			"certificate": certificate,
		})
		return
	}

	issueDate, err := parseDate(form.IssueDate)
	if err != nil || issueDate == nil {
		c.HTML(http.StatusBadRequest, "admin_certificates.html", gin.H{
			"errors":      map[string]string{"issuedate": "Must be a date in YYYY-MM-DD format"},
			"form":        form,
			"certificate": certificate,
		})
		return
	}

	certificate.Title = form.Title
	certificate.Issuer = form.Issuer
	certificate.IssueDate = *issueDate
	certificate.CredentialURL = form.CredentialURL
	certificate.ImageURL = form.ImageURL

	if err := a.db.Save(&certificate).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error updating certificate",
		})
		return
	}

	a.invalidatePublic("/")
	c.Redirect(http.StatusFound, "/admin/certificates")
}

func (a *AdminModule) deleteCertificate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := ordering.Delete(a.db, &models.Certificate{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting certificate"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) toggleCertificatePublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	published, err := ordering.TogglePublished(a.db, &models.Certificate{}, id)
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating certificate"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true, "published": published})
}

func (a *AdminModule) reorderCertificates(c *gin.Context) {
	var assignments []ordering.Assignment
	if err := c.ShouldBindJSON(&assignments); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reorder payload"})
		return
	}

	if err := ordering.Reorder(a.db, &models.Certificate{}, assignments); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "A certificate in the list no longer exists, refresh and try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reordering certificates"})
		return
	}

	a.invalidatePublic("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
