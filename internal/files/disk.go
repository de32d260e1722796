// Package files persiste los archivos de CV subidos.
package files

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedType la extensión no está permitida.
	ErrUnsupportedType = errors.New("files: unsupported file type")
	// ErrTooLarge el archivo excede el tamaño máximo.
	ErrTooLarge = errors.New("files: file too large")
)

// MaxUploadSize tamaño máximo de un CV (10 MB).
const MaxUploadSize = 10 << 20

// allowedExtensions extensiones que el motor de análisis sabe procesar.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// Store guarda archivos subidos y retorna la ruta persistida.
type Store interface {
	Save(userID, fileName string, r io.Reader) (path string, err error)
	Remove(path string) error
}

// DiskStore guarda archivos bajo un directorio raíz, un subdirectorio
// por usuario. Los nombres en disco son UUIDs para evitar colisiones y
// path traversal; el nombre original se conserva en la base.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{Root: root}
}

// ValidateFileName verifica que la extensión esté permitida.
func ValidateFileName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	return nil
}

func (s *DiskStore) Save(userID, fileName string, r io.Reader) (string, error) {
	if err := ValidateFileName(fileName); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	path := filepath.Join(s.Root, userID, uuid.NewString()+ext)

	// LimitReader con un byte extra para detectar overflow
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("files: read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return "", ErrTooLarge
	}

	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("files: write %s: %w", path, err)
	}
	return path, nil
}

func (s *DiskStore) Remove(path string) error {
	// Nunca borrar fuera del root
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return fmt.Errorf("files: path outside root: %s", path)
	}
	return removeFile(abs)
}
