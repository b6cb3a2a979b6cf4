package images

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// versionSegment "v1712345678" в пути Cloudinary
var versionSegment = regexp.MustCompile(`^v\d+$`)

// CloudinaryStore загружает фотографии в папку Cloudinary
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore создаёт клиент по имени облака и ключам API
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: NewCloudinaryStore - init client: %v", ErrStore, err)
	}
	return &CloudinaryStore{cld: cld, folder: strings.Trim(folder, "/")}, nil
}

// Save загружает изображение и возвращает его HTTPS URL
func (s *CloudinaryStore) Save(ctx context.Context, _ string, content io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: Save - upload: %v", ErrStore, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("%w: Save - upload rejected: %s", ErrStore, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: Save - no url returned", ErrStore)
	}

	return result.SecureURL, nil
}

// Delete удаляет изображение по URL, выданному Save
func (s *CloudinaryStore) Delete(ctx context.Context, url string) error {
	publicID, err := publicIDFromURL(url, s.folder)
	if err != nil {
		return err
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("%w: Delete - destroy %s: %v", ErrStore, publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("%w: Delete - destroy %s: %s", ErrStore, publicID, result.Error.Message)
	}
	return nil
}

// publicIDFromURL восстанавливает public_id из URL доставки:
// https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<id>.<ext> -> <folder>/<id>
func publicIDFromURL(url, folder string) (string, error) {
	_, rest, ok := strings.Cut(url, "/image/upload/")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	segments := strings.Split(rest, "/")
	if versionSegment.MatchString(segments[0]) {
		segments = segments[1:]
	}

	publicID := strings.Join(segments, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" || (folder != "" && !strings.HasPrefix(publicID, folder+"/")) {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}

	return publicID, nil
}
