package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"folio/models"
	"folio/ordering"
)

// Blog posts are unordered; they list by recency and have no position column.

func (a *AdminModule) listPosts(c *gin.Context) {
	var posts []models.BlogPost
	if err := a.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading posts",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_posts.html", gin.H{
		"posts": posts,
	})
}

func (a *AdminModule) newPost(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_post_form.html", gin.H{})
}

func (a *AdminModule) createPost(c *gin.Context) {
	admin := currentAdmin(c)

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_post_form.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	slug := form.Slug
	if slug == "" {
		slug = generateSlug(form.Title)
	}

	post := models.BlogPost{
		OwnerID: admin.ID,
		Title:   form.Title,
		Slug:    slug,
		Summary: form.Summary,
		Content: form.Content,
	}

	if err := a.db.Create(&post).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error creating post",
		})
		return
	}

	a.invalidatePublic("/blog", "/blog/"+post.Slug)
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (a *AdminModule) editPost(c *gin.Context) {
	var post models.BlogPost
	if err := a.db.First(&post, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_post_form.html", gin.H{
		"post": post,
	})
}

func (a *AdminModule) updatePost(c *gin.Context) {
	var post models.BlogPost
	if err := a.db.First(&post, c.Param("id")).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "admin_post_form.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
			"post":   post,
		})
		return
	}

	oldSlug := post.Slug

	post.Title = form.Title
	if form.Slug != "" {
		post.Slug = form.Slug
	} else {
		post.Slug = generateSlug(form.Title)
	}
	post.Summary = form.Summary
	post.Content = form.Content

	if err := a.db.Save(&post).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error updating post",
		})
		return
	}

	a.invalidatePublic("/blog", "/blog/"+oldSlug, "/blog/"+post.Slug)
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (a *AdminModule) deletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var post models.BlogPost
	a.db.First(&post, id)

	if err := ordering.Delete(a.db, &models.BlogPost{}, id); err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting post"})
		return
	}

	a.invalidatePublic("/blog", "/blog/"+post.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) togglePostPublished(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	published, err := ordering.TogglePublished(a.db, &models.BlogPost{}, id)
	if err != nil {
		if err == ordering.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
		return
	}

	// The first publish stamps the timestamp; unpublishing never clears it.
	if published {
		a.db.Model(&models.BlogPost{}).
			Where("id = ? AND published_at IS NULL", id).
			Update("published_at", time.Now())
	}

	var post models.BlogPost
	a.db.First(&post, id)

	a.invalidatePublic("/blog", "/blog/"+post.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true, "published": published})
}
