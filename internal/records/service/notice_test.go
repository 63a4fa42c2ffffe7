package service

import (
	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
)

func (s *RecordsServiceSuite) TestCreateNotice() {
	s.createDriverWithVehicles("A123", 1)

	s.Run("stores zip, violation address and notice", func() {
		noticeID, err := s.service.CreateNotice(s.ctx, newNoticeInput("N-1", 1))
		s.Require().NoError(err)
		s.Equal("N-1", noticeID)

		tables := s.mem.Dump()
		s.Require().Contains(tables.ViolationZips, "10018")
		s.Equal("Manhattan", tables.ViolationZips["10018"].District)
		s.Require().Contains(tables.Notices, "N-1")
		notice := tables.Notices["N-1"]
		addr, ok := tables.ViolationAddresses[notice.AddressID]
		s.Require().True(ok)
		s.Equal("W 34th St", addr.Street)
		s.Equal("10018", addr.ZipCode)
	})

	s.Run("duplicate notice id is a conflict and writes nothing", func() {
		before := s.mem.Dump()

		in := newNoticeInput("N-1", 1)
		in.ViolationZip.ZipCode = "10036"
		_, err := s.service.CreateNotice(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal(before, s.mem.Dump())
	})

	s.Run("missing vehicle is a validation error and writes nothing", func() {
		before := s.mem.Dump()

		in := newNoticeInput("N-2", 42)
		in.ViolationZip.ZipCode = "10036"
		_, err := s.service.CreateNotice(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
		s.Equal("vehicle not found", dErrors.MessageOf(err))
		s.Equal(before, s.mem.Dump())
	})

	s.Run("rejects values outside the severity and status sets", func() {
		in := newNoticeInput("N-3", 1)
		in.Notice.ViolationSeverity = "Severe"
		_, err := s.service.CreateNotice(s.ctx, in)
		s.True(dErrors.Is(err, dErrors.CodeValidation))

		in = newNoticeInput("N-3", 1)
		in.Notice.NoticeStatus = "Pending"
		_, err = s.service.CreateNotice(s.ctx, in)
		s.True(dErrors.Is(err, dErrors.CodeValidation))

		in = newNoticeInput("  ", 1)
		_, err = s.service.CreateNotice(s.ctx, in)
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})
}

func (s *RecordsServiceSuite) TestCreateNoticeRollsBackOnFailure() {
	s.createDriverWithVehicles("A123", 1)
	before := s.mem.Dump()
	s.faults.insertNotice = errDiskFull

	_, err := s.service.CreateNotice(s.ctx, newNoticeInput("N-1", 1))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	tables := s.mem.Dump()
	s.Empty(tables.ViolationZips)
	s.Empty(tables.ViolationAddresses)
	s.Equal(before, tables)
}

func (s *RecordsServiceSuite) TestUpdateNotice() {
	s.createDriverWithVehicles("A123", 1)
	s.createDriverWithVehicles("B456", 2)
	_, err := s.service.CreateNotice(s.ctx, newNoticeInput("N-1", 1))
	s.Require().NoError(err)
	original := s.mem.Dump().Notices["N-1"]

	s.Run("returns the stored row and keeps the same address id", func() {
		in := newNoticeInput("ignored", 1)
		in.Notice.NoticeStatus = models.NoticeStatusResolved
		in.Notice.NotificationSent = true
		in.Notice.ViolationSeverity = models.SeverityHigh
		in.ViolationZip = models.ViolationZipInput{ZipCode: "11201", State: "NY", City: "NYC", District: "Brooklyn"}
		in.ViolationAddress.Street = "Atlantic Ave"

		updated, err := s.service.UpdateNotice(s.ctx, "N-1", in)
		s.Require().NoError(err)
		s.Equal("N-1", updated.NoticeID)
		s.Equal(models.NoticeStatusResolved, updated.NoticeStatus)
		s.Equal(models.SeverityHigh, updated.ViolationSeverity)
		s.True(updated.NotificationSent)
		s.Equal(original.AddressID, updated.AddressID)

		tables := s.mem.Dump()
		s.Len(tables.ViolationAddresses, 1)
		addr := tables.ViolationAddresses[original.AddressID]
		s.Equal("11201", addr.ZipCode)
		s.Equal("Atlantic Ave", addr.Street)
	})

	s.Run("moves the notice to another vehicle", func() {
		updated, err := s.service.UpdateNotice(s.ctx, "N-1", newNoticeInput("N-1", 2))
		s.Require().NoError(err)
		s.Equal(int64(2), updated.CarID)
	})

	s.Run("unknown notice is not found and writes nothing", func() {
		before := s.mem.Dump()

		in := newNoticeInput("N-404", 1)
		in.ViolationZip.ZipCode = "73301"
		_, err := s.service.UpdateNotice(s.ctx, "N-404", in)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
		s.Equal(before, s.mem.Dump())
	})

	s.Run("failure after the address write rolls back the address", func() {
		before := s.mem.Dump()
		s.faults.updateNotice = errDiskFull
		defer func() { s.faults.updateNotice = nil }()

		in := newNoticeInput("N-1", 1)
		in.ViolationAddress.Street = "Broadway"
		in.ViolationZip.ZipCode = "10007"
		_, err := s.service.UpdateNotice(s.ctx, "N-1", in)
		s.Require().Error(err)
		s.Equal(before, s.mem.Dump())
	})
}

func (s *RecordsServiceSuite) TestDeleteNotice() {
	s.createDriverWithVehicles("A123", 1)
	_, err := s.service.CreateNotice(s.ctx, newNoticeInput("N-1", 1))
	s.Require().NoError(err)
	_, err = s.service.CreateNotice(s.ctx, newNoticeInput("N-2", 1))
	s.Require().NoError(err)
	a1, err := s.mem.SeedAction("N-1")
	s.Require().NoError(err)
	a2, err := s.mem.SeedAction("N-1")
	s.Require().NoError(err)
	keep, err := s.mem.SeedAction("N-2")
	s.Require().NoError(err)
	addressID := s.mem.Dump().Notices["N-1"].AddressID

	s.Run("failure rolls back the action deletes", func() {
		before := s.mem.Dump()
		s.faults.deleteNotice = errDiskFull
		defer func() { s.faults.deleteNotice = nil }()

		deleted, err := s.service.DeleteNotice(s.ctx, "N-1")
		s.Require().Error(err)
		s.False(deleted)
		s.Equal(before, s.mem.Dump())
	})

	s.Run("removes actions then the notice", func() {
		deleted, err := s.service.DeleteNotice(s.ctx, "N-1")
		s.Require().NoError(err)
		s.True(deleted)

		tables := s.mem.Dump()
		s.NotContains(tables.Notices, "N-1")
		s.NotContains(tables.Actions, a1)
		s.NotContains(tables.Actions, a2)
		s.Contains(tables.Actions, keep)
		s.Contains(tables.Notices, "N-2")
		s.Contains(tables.ViolationAddresses, addressID, "violation address is left behind")
	})

	s.Run("unknown notice reports false", func() {
		before := s.mem.Dump()

		deleted, err := s.service.DeleteNotice(s.ctx, "N-1")
		s.Require().NoError(err)
		s.False(deleted)
		s.Equal(before, s.mem.Dump())
	})
}

func (s *RecordsServiceSuite) TestQueries() {
	driverID := s.createDriverWithVehicles("A123", 1, 2)
	s.createDriverWithVehicles("B456", 3)
	for _, in := range []models.NoticeInput{
		newNoticeInput("N-2", 2),
		newNoticeInput("N-1", 1),
		newNoticeInput("N-3", 3),
	} {
		_, err := s.service.CreateNotice(s.ctx, in)
		s.Require().NoError(err)
	}

	s.Run("get driver", func() {
		record, err := s.service.GetDriver(s.ctx, driverID)
		s.Require().NoError(err)
		s.Equal("A123", record.LicenceNumber)

		_, err = s.service.GetDriver(s.ctx, 999)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("list drivers", func() {
		drivers, err := s.service.ListDrivers(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(drivers, 2)
		s.Equal(driverID, drivers[0].DriverID)
		s.Equal("Doe", drivers[0].LastName)
	})

	s.Run("list notices of a driver", func() {
		notices, err := s.service.ListNoticesByDriver(s.ctx, driverID)
		s.Require().NoError(err)
		s.Require().Len(notices, 2)
		s.Equal("N-1", notices[0].NoticeID)
		s.Equal("N-2", notices[1].NoticeID)

		_, err = s.service.ListNoticesByDriver(s.ctx, 999)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}
