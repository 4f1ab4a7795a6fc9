package main

import (
	"fmt"
	"log"
	"net/http"

	"marketbe/models"
	"marketbe/pkg/images"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// createPostHandler creates a post for the authenticated user. Every
// referenced image URL must point at an already stored file.
func createPostHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Title   string   `json:"title" binding:"required"`
		Content string   `json:"content" binding:"required"`
		Images  []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Images) > models.MaxPostImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many images (max %d)", models.MaxPostImages)})
		return
	}
	for _, u := range req.Images {
		name, err := reconciler.FilenameFromURL(u)
		if err != nil || !imgStore.Exists(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image %q is not an uploaded file", u)})
			return
		}
	}
	// prevent an exact duplicate entry
	var existing models.Post
	if err := db.Where("title = ? AND content = ?", req.Title, req.Content).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post with the same title and content already exists"})
		return
	}

	post := models.Post{Title: req.Title, Content: req.Content, Images: pq.StringArray(req.Images), UserID: user.ID}
	if err := db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// listPostsHandler lists recent posts for any authenticated user.
func listPostsHandler(c *gin.Context) {
	var posts []models.Post
	if err := db.Order("id desc").Limit(200).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// getPostHandler returns a single post; public read.
func getPostHandler(c *gin.Context) {
	id := c.Param("id")
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

// updatePostHandler updates a post and reconciles its image list: files
// referenced by the old list but absent from the new one are deleted
// best-effort before the record is written. Cleanup failures never block the
// update itself.
func updatePostHandler(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Title   string   `json:"title" binding:"required"`
		Content string   `json:"content" binding:"required"`
		Images  []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Images) > models.MaxPostImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("too many images (max %d)", models.MaxPostImages)})
		return
	}

	var current models.Post
	if err := db.First(&current, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var report images.CleanupReport
	if toDelete := images.Diff(current.Images, req.Images); len(toDelete) > 0 {
		report = reconciler.Cleanup(toDelete)
		if report.Failed > 0 {
			log.Printf("post %s: failed to delete %d old images", id, report.Failed)
		}
	}

	current.Title = req.Title
	current.Content = req.Content
	current.Images = pq.StringArray(req.Images)
	if err := db.Save(&current).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"data":               current,
		"deletedImagesCount": report.Deleted,
		"message":            "Post updated successfully",
	})
}

// deletePostHandler deletes a post and then its stored images. The image
// URLs are read before the database delete so cleanup can still run when the
// delete itself fails; leftover files are worse than a spurious sweep.
func deletePostHandler(c *gin.Context) {
	id := c.Param("id")
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	urls := []string(post.Images)

	if err := db.Delete(&models.Post{}, post.ID).Error; err != nil {
		report := reconciler.Cleanup(urls)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":       false,
			"error":         "Failed to delete post",
			"imagesDeleted": report.Deleted,
		})
		return
	}

	report := reconciler.Cleanup(urls)
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"deletedImageCount":  report.Deleted,
		"failedImageCount":   report.NotFound + report.Invalid + report.Failed,
		"imageDeleteResults": report.Results,
		"message":            "Post deleted successfully",
	})
}

// deleteAllPostsHandler empties the posts table and sweeps every referenced
// image. Admin only.
func deleteAllPostsHandler(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "administrator" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	var posts []models.Post
	if err := db.Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "query failed"})
		return
	}
	if len(posts) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "No posts to delete"})
		return
	}
	var urls []string
	for _, p := range posts {
		urls = append(urls, p.Images...)
	}

	if err := db.Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		// sweep with the URLs already in hand even though the delete failed
		reconciler.Cleanup(urls)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete all posts"})
		return
	}

	report := reconciler.Cleanup(urls)
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"postsDeleted":     len(posts),
		"imagesDeleted":    report.Deleted,
		"imagesFailed":     report.NotFound + report.Invalid + report.Failed,
		"totalImagesFound": len(urls),
	})
}
