package service

import (
	"context"
	"errors"
	"fmt"

	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
)

// CreateDriver stores a driver together with its registration address and
// returns the generated driver id.
func (s *Service) CreateDriver(ctx context.Context, in models.DriverInput) (int64, error) {
	var driverID int64
	err := s.runInTx(ctx, "create_driver", func(store Store) error {
		if err := resolveZip(ctx, store, in.Address.Zip()); err != nil {
			return err
		}
		addressID, err := createRegistrationAddress(ctx, store, in.Address)
		if err != nil {
			return err
		}
		driverID, err = store.InsertDriver(ctx, addressID, in.Driver)
		if err != nil {
			return fmt.Errorf("insert driver: %w", err)
		}
		return nil
	})
	s.observe("driver", "create", err)
	if err != nil {
		return 0, translate(err, "failed to create driver")
	}

	s.logAudit(ctx, "driver_created",
		"driver_id", driverID,
		"zip_code", in.Address.ZipCode,
	)
	return driverID, nil
}

// UpdateDriver replaces a driver's fields and address in place and returns the
// row as stored after the update.
func (s *Service) UpdateDriver(ctx context.Context, driverID int64, in models.DriverInput) (*models.DriverRecord, error) {
	var updated *models.DriverRecord
	err := s.runInTx(ctx, "update_driver", func(store Store) error {
		existing, err := store.FindDriver(ctx, driverID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "driver not found")
			}
			return fmt.Errorf("find driver %d: %w", driverID, err)
		}
		if err := resolveZip(ctx, store, in.Address.Zip()); err != nil {
			return err
		}
		if err := updateRegistrationAddress(ctx, store, existing.AddressID, in.Address); err != nil {
			return err
		}
		if err := store.UpdateDriver(ctx, driverID, in.Driver); err != nil {
			return fmt.Errorf("update driver %d: %w", driverID, err)
		}
		updated, err = store.FindDriver(ctx, driverID)
		if err != nil {
			return fmt.Errorf("reload driver %d: %w", driverID, err)
		}
		return nil
	})
	s.observe("driver", "update", err)
	if err != nil {
		return nil, translate(err, "failed to update driver")
	}

	s.logAudit(ctx, "driver_updated", "driver_id", driverID)
	return updated, nil
}

// DeleteDriver removes a driver and everything hanging off its vehicles.
// It reports false when the driver does not exist. The driver's registration
// address row is kept.
func (s *Service) DeleteDriver(ctx context.Context, driverID int64) (bool, error) {
	var (
		found   bool
		removed cascadeCounts
	)
	err := s.runInTx(ctx, "delete_driver", func(store Store) error {
		if _, err := store.FindDriver(ctx, driverID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("find driver %d: %w", driverID, err)
		}
		found = true

		var err error
		removed, err = cascadeDriver(ctx, store, driverID)
		return err
	})
	s.observe("driver", "delete", err)
	if err != nil {
		return false, translate(err, "failed to delete driver")
	}
	if !found {
		return false, nil
	}

	s.recordCascade(removed)
	s.logAudit(ctx, "driver_deleted",
		"driver_id", driverID,
		"vehicles_deleted", removed.vehicles,
		"notices_deleted", removed.notices,
		"actions_deleted", removed.actions,
	)
	return true, nil
}
