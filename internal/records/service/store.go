package service

import (
	"context"

	"noticebase/internal/records/models"
)

// Store is the set of row operations available inside one transaction.
// Lookups of a missing row return sentinel.ErrNotFound; constraint failures
// return sentinel.ErrConflict.
type Store interface {
	ZipExists(ctx context.Context, kind models.ZipKind, code string) (bool, error)
	InsertZip(ctx context.Context, zip models.ZipCode) error

	InsertRegistrationAddress(ctx context.Context, addr models.RegistrationAddress) (int64, error)
	UpdateRegistrationAddress(ctx context.Context, addr models.RegistrationAddress) error
	InsertViolationAddress(ctx context.Context, addr models.ViolationAddress) (int64, error)
	UpdateViolationAddress(ctx context.Context, addr models.ViolationAddress) error

	InsertDriver(ctx context.Context, addressID int64, driver models.Driver) (int64, error)
	FindDriver(ctx context.Context, driverID int64) (*models.DriverRecord, error)
	UpdateDriver(ctx context.Context, driverID int64, driver models.Driver) error
	DeleteDriver(ctx context.Context, driverID int64) error
	ListDrivers(ctx context.Context) ([]models.DriverSummary, error)

	VehicleExists(ctx context.Context, carID int64) (bool, error)
	ListVehicleIDsByDriver(ctx context.Context, driverID int64) ([]int64, error)
	DeleteVehicle(ctx context.Context, carID int64) error

	InsertNotice(ctx context.Context, addressID int64, notice models.Notice) error
	FindNotice(ctx context.Context, noticeID string) (*models.NoticeRecord, error)
	UpdateNotice(ctx context.Context, notice models.Notice) error
	DeleteNotice(ctx context.Context, noticeID string) error
	ListNoticeIDsByVehicle(ctx context.Context, carID int64) ([]string, error)
	ListNoticesByDriver(ctx context.Context, driverID int64) ([]models.NoticeRecord, error)

	DeleteActionsByNotice(ctx context.Context, noticeID string) (int64, error)
}
