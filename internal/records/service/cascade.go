package service

import (
	"context"
	"fmt"
)

type cascadeCounts struct {
	vehicles int
	notices  int
	actions  int
}

// cascadeDriver deletes bottom-up: each notice's actions, then the notice,
// then the vehicle once its notices are gone, and finally the driver.
func cascadeDriver(ctx context.Context, store Store, driverID int64) (cascadeCounts, error) {
	var counts cascadeCounts

	carIDs, err := store.ListVehicleIDsByDriver(ctx, driverID)
	if err != nil {
		return counts, fmt.Errorf("list vehicles of driver %d: %w", driverID, err)
	}
	for _, carID := range carIDs {
		noticeIDs, err := store.ListNoticeIDsByVehicle(ctx, carID)
		if err != nil {
			return counts, fmt.Errorf("list notices of vehicle %d: %w", carID, err)
		}
		for _, noticeID := range noticeIDs {
			actions, err := cascadeNotice(ctx, store, noticeID)
			if err != nil {
				return counts, err
			}
			counts.actions += actions
			counts.notices++
		}
		if err := store.DeleteVehicle(ctx, carID); err != nil {
			return counts, fmt.Errorf("delete vehicle %d: %w", carID, err)
		}
		counts.vehicles++
	}

	if err := store.DeleteDriver(ctx, driverID); err != nil {
		return counts, fmt.Errorf("delete driver %d: %w", driverID, err)
	}
	return counts, nil
}

// cascadeNotice deletes a notice's actions and then the notice itself.
func cascadeNotice(ctx context.Context, store Store, noticeID string) (int, error) {
	actions, err := store.DeleteActionsByNotice(ctx, noticeID)
	if err != nil {
		return 0, fmt.Errorf("delete actions of notice %q: %w", noticeID, err)
	}
	if err := store.DeleteNotice(ctx, noticeID); err != nil {
		return 0, fmt.Errorf("delete notice %q: %w", noticeID, err)
	}
	return int(actions), nil
}

func (s *Service) recordCascade(c cascadeCounts) {
	if s.metrics == nil {
		return
	}
	s.metrics.AddCascadeDeleted("actions", c.actions)
	s.metrics.AddCascadeDeleted("notice_info", c.notices)
	s.metrics.AddCascadeDeleted("car_details", c.vehicles)
}
