// Package images stores doctor photos either on the local disk or in Cloudinary.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrStore возвращается при ошибках записи или удаления файла
	ErrStore = errors.New("images: store error")

	// ErrForeignURL возвращается, если URL не принадлежит хранилищу
	ErrForeignURL = errors.New("images: url does not belong to the store")
)

// LocalStore кладёт фотографии в каталог, который сервис раздаёт по baseURL
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore создаёт каталог при необходимости
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: NewLocalStore - mkdir %s: %v", ErrStore, dir, err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir каталог с файлами, для раздачи через http.FileServer
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save записывает содержимое под случайным именем и возвращает публичный URL
func (s *LocalStore) Save(_ context.Context, ext string, content io.Reader) (string, error) {
	name := uuid.NewString() + "." + ext

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: Save - create: %v", ErrStore, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: Save - write: %v", ErrStore, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: Save - close: %v", ErrStore, err)
	}

	return s.baseURL + "/" + name, nil
}

// Delete удаляет файл по URL, выданному Save. Отсутствующий файл не ошибка
func (s *LocalStore) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: Delete - remove: %v", ErrStore, err)
	}
	return nil
}
