package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
)

func validateNotice(n models.Notice) error {
	if !n.ViolationSeverity.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid violation_severity: "+string(n.ViolationSeverity))
	}
	if !n.NoticeStatus.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid notice_status: "+string(n.NoticeStatus))
	}
	return nil
}

// CreateNotice issues a notice against an existing vehicle and returns the
// caller-supplied notice id.
func (s *Service) CreateNotice(ctx context.Context, in models.NoticeInput) (string, error) {
	if strings.TrimSpace(in.Notice.NoticeID) == "" {
		return "", dErrors.New(dErrors.CodeValidation, "notice_id is required")
	}
	if err := validateNotice(in.Notice); err != nil {
		return "", err
	}

	err := s.runInTx(ctx, "create_notice", func(store Store) error {
		exists, err := store.VehicleExists(ctx, in.Notice.CarID)
		if err != nil {
			return fmt.Errorf("lookup vehicle %d: %w", in.Notice.CarID, err)
		}
		if !exists {
			return dErrors.New(dErrors.CodeValidation, "vehicle not found")
		}

		zip := in.ViolationZip.Zip()
		if err := resolveZip(ctx, store, zip); err != nil {
			return err
		}
		addressID, err := createViolationAddress(ctx, store, zip.Code, in.ViolationAddress)
		if err != nil {
			return err
		}
		if err := store.InsertNotice(ctx, addressID, in.Notice); err != nil {
			return fmt.Errorf("insert notice %q: %w", in.Notice.NoticeID, err)
		}
		return nil
	})
	s.observe("notice", "create", err)
	if err != nil {
		return "", translate(err, "failed to create notice")
	}

	s.logAudit(ctx, "notice_created",
		"notice_id", in.Notice.NoticeID,
		"car_id", in.Notice.CarID,
		"severity", string(in.Notice.ViolationSeverity),
	)
	return in.Notice.NoticeID, nil
}

// UpdateNotice replaces a notice's fields and violation address in place and
// returns the row as stored after the update. The notice may be moved to a
// different car_id; that vehicle is not checked.
func (s *Service) UpdateNotice(ctx context.Context, noticeID string, in models.NoticeInput) (*models.NoticeRecord, error) {
	if err := validateNotice(in.Notice); err != nil {
		return nil, err
	}
	in.Notice.NoticeID = noticeID

	var updated *models.NoticeRecord
	err := s.runInTx(ctx, "update_notice", func(store Store) error {
		existing, err := store.FindNotice(ctx, noticeID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "notice not found")
			}
			return fmt.Errorf("find notice %q: %w", noticeID, err)
		}

		zip := in.ViolationZip.Zip()
		if err := resolveZip(ctx, store, zip); err != nil {
			return err
		}
		if err := updateViolationAddress(ctx, store, existing.AddressID, zip.Code, in.ViolationAddress); err != nil {
			return err
		}
		if err := store.UpdateNotice(ctx, in.Notice); err != nil {
			return fmt.Errorf("update notice %q: %w", noticeID, err)
		}
		updated, err = store.FindNotice(ctx, noticeID)
		if err != nil {
			return fmt.Errorf("reload notice %q: %w", noticeID, err)
		}
		return nil
	})
	s.observe("notice", "update", err)
	if err != nil {
		return nil, translate(err, "failed to update notice")
	}

	s.logAudit(ctx, "notice_updated", "notice_id", noticeID, "car_id", in.Notice.CarID)
	return updated, nil
}

// DeleteNotice removes a notice and its actions, reporting false when the
// notice does not exist. The violation address row is kept.
func (s *Service) DeleteNotice(ctx context.Context, noticeID string) (bool, error) {
	var (
		found   bool
		actions int
	)
	err := s.runInTx(ctx, "delete_notice", func(store Store) error {
		if _, err := store.FindNotice(ctx, noticeID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("find notice %q: %w", noticeID, err)
		}
		found = true

		var err error
		actions, err = cascadeNotice(ctx, store, noticeID)
		return err
	})
	s.observe("notice", "delete", err)
	if err != nil {
		return false, translate(err, "failed to delete notice")
	}
	if !found {
		return false, nil
	}

	s.recordCascade(cascadeCounts{notices: 1, actions: actions})
	s.logAudit(ctx, "notice_deleted", "notice_id", noticeID, "actions_deleted", actions)
	return true, nil
}
