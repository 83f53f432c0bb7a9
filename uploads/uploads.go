// Package uploads stores multipart files under the media root and hands back
// the relative path recorded in the database.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Save writes an uploaded file into <mediaRoot>/<subdir> under a unique name
// and returns the path relative to the media root.
func Save(c *gin.Context, file *multipart.FileHeader, mediaRoot, subdir string) (string, error) {
	dir := filepath.Join(mediaRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}

// Remove deletes a stored file by its relative path, ignoring failures: the
// database row is authoritative and orphaned files are harmless.
func Remove(mediaRoot, relPath string) {
	if relPath == "" {
		return
	}
	_ = os.Remove(filepath.Join(mediaRoot, filepath.FromSlash(relPath)))
}
