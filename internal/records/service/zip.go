package service

import (
	"context"
	"fmt"

	"noticebase/internal/records/models"
)

// resolveZip makes sure a ZIP reference row exists. An existing row is left
// untouched even when the supplied attributes differ.
func resolveZip(ctx context.Context, store Store, zip models.ZipCode) error {
	exists, err := store.ZipExists(ctx, zip.Kind, zip.Code)
	if err != nil {
		return fmt.Errorf("lookup %s zip %q: %w", zip.Kind, zip.Code, err)
	}
	if exists {
		return nil
	}
	if err := store.InsertZip(ctx, zip); err != nil {
		return fmt.Errorf("insert %s zip %q: %w", zip.Kind, zip.Code, err)
	}
	return nil
}
