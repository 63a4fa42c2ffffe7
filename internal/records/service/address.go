package service

import (
	"context"
	"fmt"

	"noticebase/internal/records/models"
)

// Address writers assume resolveZip already ran for the same code in the
// same transaction.

func createRegistrationAddress(ctx context.Context, store Store, in models.RegistrationAddressInput) (int64, error) {
	addressID, err := store.InsertRegistrationAddress(ctx, models.RegistrationAddress{
		ZipCode: in.ZipCode,
		Street:  in.Street,
		House:   in.House,
	})
	if err != nil {
		return 0, fmt.Errorf("insert registration address: %w", err)
	}
	return addressID, nil
}

func updateRegistrationAddress(ctx context.Context, store Store, addressID int64, in models.RegistrationAddressInput) error {
	err := store.UpdateRegistrationAddress(ctx, models.RegistrationAddress{
		AddressID: addressID,
		ZipCode:   in.ZipCode,
		Street:    in.Street,
		House:     in.House,
	})
	if err != nil {
		return fmt.Errorf("update registration address %d: %w", addressID, err)
	}
	return nil
}

func createViolationAddress(ctx context.Context, store Store, zipCode string, in models.ViolationAddressInput) (int64, error) {
	addressID, err := store.InsertViolationAddress(ctx, models.ViolationAddress{
		ZipCode: zipCode,
		Street:  in.Street,
	})
	if err != nil {
		return 0, fmt.Errorf("insert violation address: %w", err)
	}
	return addressID, nil
}

func updateViolationAddress(ctx context.Context, store Store, addressID int64, zipCode string, in models.ViolationAddressInput) error {
	err := store.UpdateViolationAddress(ctx, models.ViolationAddress{
		AddressID: addressID,
		ZipCode:   zipCode,
		Street:    in.Street,
	})
	if err != nil {
		return fmt.Errorf("update violation address %d: %w", addressID, err)
	}
	return nil
}
