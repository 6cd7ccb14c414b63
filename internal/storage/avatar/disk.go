package avatar

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fitness-app-go/internal/domain/user"
	"github.com/google/uuid"
)

const avatarsFolder = "avatars"

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// DiskStore writes avatars under <root>/avatars/<user>/ and hands out URLs
// below publicPrefix, which the HTTP server maps back onto root.
type DiskStore struct {
	root         string
	publicPrefix string
	maxBytes     int64
}

func NewDiskStore(root, publicPrefix string, maxBytes int64) (*DiskStore, error) {
	if root == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Join(root, avatarsFolder), 0o755); err != nil {
		return nil, fmt.Errorf("create avatars folder: %w", err)
	}
	return &DiskStore{
		root:         root,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		maxBytes:     maxBytes,
	}, nil
}

func (s *DiskStore) Save(ctx context.Context, userID string, upload user.AvatarUpload) (string, error) {
	if upload.Body == nil {
		return "", user.ErrUnsupportedAvatar
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", user.ErrAvatarTooLarge
	}

	// the declared content type is not trusted
	reader := bufio.NewReader(upload.Body)
	head, err := reader.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	ext, ok := extensions[http.DetectContentType(head)]
	if !ok {
		return "", user.ErrUnsupportedAvatar
	}

	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	dir := filepath.Join(s.root, avatarsFolder, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create user avatar folder: %w", err)
	}

	name := uuid.NewString() + ext
	target := filepath.Join(dir, name)
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}

	var src io.Reader = reader
	if s.maxBytes > 0 {
		src = io.LimitReader(reader, s.maxBytes+1)
	}
	written, err := io.Copy(file, src)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && written > s.maxBytes {
		err = user.ErrAvatarTooLarge
	}
	if err != nil {
		_ = os.Remove(target)
		if errors.Is(err, user.ErrAvatarTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	return path.Join(s.publicPrefix, avatarsFolder, userID, name), nil
}

// Remove deletes a file previously returned by Save. URLs outside the store
// are ignored.
func (s *DiskStore) Remove(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.publicPrefix+"/")
	if !ok || !strings.HasPrefix(rel, avatarsFolder+"/") {
		return nil
	}
	cleaned := path.Clean(rel)
	if strings.HasPrefix(cleaned, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(cleaned)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
