package flashcard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// validateInput checks the caller-supplied fields and collects every
// problem. requireImage is false for updates, where a nil image keeps the
// current one.
func validateInput(name string, raw types.RawImage, requireImage bool) (string, error) {
	var errs []types.FieldError

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, types.FieldError{Field: "name", Message: "required"})
	}
	if requireImage && raw == nil {
		errs = append(errs, types.FieldError{Field: "image", Message: "required"})
	}

	if len(errs) > 0 {
		return "", &types.ValidationError{Errors: errs}
	}
	return name, nil
}

// transform runs the image transformer. Any failure is the caller's input
// being unusable.
func (s *Service) transform(raw types.RawImage) (string, error) {
	dataURL, err := s.transformer.Transform(raw)
	if err != nil {
		return "", types.NewValidationErrorCause("image", err)
	}
	return dataURL, nil
}

// verifyCategories fails with a ValidationError naming every ID that does
// not resolve to a stored category.
func verifyCategories(ctx context.Context, tx types.Tx, categoryIDs []string) error {
	var errs []types.FieldError
	for _, id := range categoryIDs {
		_, err := tx.Categories().GetByID(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			errs = append(errs, types.FieldError{Field: "categoryIds", Message: fmt.Sprintf("unknown category %s", id)})
			continue
		}
		if err != nil {
			return fmt.Errorf("verify category %s: %w", id, err)
		}
	}
	if len(errs) > 0 {
		return &types.ValidationError{Errors: errs}
	}
	return nil
}
