package types

import "io"

// Image is the stored, re-encoded picture owned by one flashcard.
// DataURL is directly displayable (data:image/jpeg;base64,...).
type Image struct {
	ID      string `json:"id"`
	DataURL string `json:"dataUrl"`
}

// RawImage is an uploaded picture before transformation: a byte blob with a
// declared MIME type and size.
type RawImage interface {
	MIMEType() string
	Size() int64
	Open() (io.ReadCloser, error)
}
