package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"folio/models"
	"folio/ordering"
)

func (a *AdminModule) listMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := a.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading messages",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_messages.html", gin.H{
		"messages": messages,
	})
}

func (a *AdminModule) toggleMessageRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	read, err := ordering.ToggleFlag(a.db, &models.ContactMessage{}, id, "read")
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "read": read})
}

func (a *AdminModule) deleteMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := ordering.Delete(a.db, &models.ContactMessage{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
