package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProofStorage menyimpan file bukti transfer ke disk dan mengembalikan
// referensinya. Mesin pembayaran hanya menyimpan ref, bukan isi file.
type ProofStorage struct {
	baseDir string
}

func NewProofStorage(baseDir string) *ProofStorage {
	return &ProofStorage{baseDir: baseDir}
}

var allowedProofExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// Save menulis file upload dengan nama uuid dan mengembalikan path relatif
// yang dipakai sebagai proof ref.
func (ps *ProofStorage) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedProofExts[ext] {
		return "", fmt.Errorf("unsupported proof file type %q: %w", ext, ErrInvalidInput)
	}

	if err := os.MkdirAll(ps.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(ps.baseDir, filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save proof file: %w", err)
	}

	return filename, nil
}
