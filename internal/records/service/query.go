package service

import (
	"context"
	"errors"
	"fmt"

	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
)

// GetDriver returns a single driver.
func (s *Service) GetDriver(ctx context.Context, driverID int64) (*models.DriverRecord, error) {
	var record *models.DriverRecord
	err := s.runInTx(ctx, "get_driver", func(store Store) error {
		var err error
		record, err = store.FindDriver(ctx, driverID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return err
	})
	if err != nil {
		return nil, translate(err, "failed to load driver")
	}
	return record, nil
}

// ListDrivers returns a summary of every driver.
func (s *Service) ListDrivers(ctx context.Context) ([]models.DriverSummary, error) {
	var drivers []models.DriverSummary
	err := s.runInTx(ctx, "list_drivers", func(store Store) error {
		var err error
		drivers, err = store.ListDrivers(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err, "failed to list drivers")
	}
	return drivers, nil
}

// ListNoticesByDriver returns the notices issued against any vehicle the
// driver owns. An unknown driver is reported as not found.
func (s *Service) ListNoticesByDriver(ctx context.Context, driverID int64) ([]models.NoticeRecord, error) {
	var notices []models.NoticeRecord
	err := s.runInTx(ctx, "list_driver_notices", func(store Store) error {
		if _, err := store.FindDriver(ctx, driverID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "driver not found")
			}
			return fmt.Errorf("find driver %d: %w", driverID, err)
		}
		var err error
		notices, err = store.ListNoticesByDriver(ctx, driverID)
		return err
	})
	if err != nil {
		return nil, translate(err, "failed to list notices")
	}
	return notices, nil
}
