package imaging

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var (
	_ types.RawImage = (*byteSource)(nil)
	_ types.RawImage = (*fileSource)(nil)
)

type byteSource struct {
	mimeType string
	data     []byte
}

// Bytes wraps an in-memory upload.
func Bytes(mimeType string, data []byte) types.RawImage {
	return &byteSource{mimeType: mimeType, data: data}
}

func (s *byteSource) MIMEType() string { return s.mimeType }
func (s *byteSource) Size() int64      { return int64(len(s.data)) }

func (s *byteSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

type fileSource struct {
	path     string
	mimeType string
	size     int64
}

// File wraps a picture on disk. The declared MIME type comes from the
// file extension, or from the content when the extension is unknown.
func File(path string) (types.RawImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("image %s is a directory", path)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		m, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, fmt.Errorf("detect image type %s: %w", path, err)
		}
		mimeType = m.String()
	}
	return &fileSource{path: path, mimeType: mimeType, size: info.Size()}, nil
}

func (s *fileSource) MIMEType() string { return s.mimeType }
func (s *fileSource) Size() int64      { return s.size }

func (s *fileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}
