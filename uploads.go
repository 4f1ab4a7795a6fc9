package main

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"marketbe/pkg/images"

	"github.com/gin-gonic/gin"
)

// uploadHandler ingests one or more multipart file parts. Validation is
// all-or-nothing for the batch; past that, per-file outcomes are itemized in
// the response.
func uploadHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		// older clients send a single "file" part
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	batch := make([]images.UploadCandidate, 0, len(files))
	for _, fh := range files {
		data, err := readFormFile(fh)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
		batch = append(batch, images.UploadCandidate{
			Name:      fh.Filename,
			MediaType: mediaTypeOf(fh),
			Size:      fh.Size,
			Data:      data,
		})
	}

	results, err := ingestor.Ingest(batch)
	if err != nil {
		var verr *images.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed == len(results) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file", "results": results})
		return
	}
	// N=1 keeps the historical single-object response shape.
	if len(results) == 1 {
		c.JSON(http.StatusOK, results[0])
		return
	}
	c.JSON(http.StatusOK, results)
}

func mediaTypeOf(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// deleteUploadsHandler best-effort deletes the files behind a list of URLs.
// Always 200 with counts; only a malformed body is a client error.
func deleteUploadsHandler(c *gin.Context) {
	var req struct {
		URLs []string `json:"urls"`
		URL  string   `json:"url"` // single-URL form kept for older clients
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	urls := req.URLs
	if len(urls) == 0 && req.URL != "" {
		urls = []string{req.URL}
	}
	report := reconciler.Cleanup(urls)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deleted":  report.Deleted,
		"notFound": report.NotFound,
		"failed":   report.Failed + report.Invalid,
	})
}

// serveImageHandler streams a stored file. The filename check runs before
// any filesystem access.
func serveImageHandler(c *gin.Context) {
	name := c.Param("filename")
	if !images.SafeFilename(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}
	data, contentType, err := imgStore.Get(name)
	if err != nil {
		if errors.Is(err, images.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading image"})
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, contentType, data)
}
