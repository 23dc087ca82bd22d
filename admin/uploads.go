package admin

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var uploadFolders = map[string]bool{
	"projects":     true,
	"skills":       true,
	"certificates": true,
	"avatar":       true,
}

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// upload stores an image under public/uploads/<folder>/ and returns its
// public URL. Filenames are random so re-uploads never clobber each other.
func (a *AdminModule) upload(c *gin.Context) {
	folder := c.PostForm("folder")
	if !uploadFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown upload folder"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join("public", "uploads", folder, name)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing file"})
		return
	}

	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": "/public/uploads/" + folder + "/" + name,
	})
}
