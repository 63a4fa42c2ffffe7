package service

import (
	"context"

	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
)

func (s *RecordsServiceSuite) TestCreateDriver() {
	s.Run("stores zip, address and driver", func() {
		driverID, err := s.service.CreateDriver(s.ctx, newDriverInput("A123"))
		s.Require().NoError(err)
		s.NotZero(driverID)

		tables := s.mem.Dump()
		s.Require().Contains(tables.RegZips, "10001")
		s.Equal("NY", tables.RegZips["10001"].State)
		s.Equal("NYC", tables.RegZips["10001"].City)
		s.Require().Len(tables.RegAddresses, 1)
		s.Require().Len(tables.Drivers, 1)

		driver := tables.Drivers[driverID]
		s.Equal("A123", driver.LicenceNumber)
		addr, ok := tables.RegAddresses[driver.AddressID]
		s.Require().True(ok, "driver must reference its address")
		s.Equal("5th Ave", addr.Street)
		s.Equal("10", addr.House)
		s.Equal("10001", addr.ZipCode)
	})

	s.Run("reuses an existing zip without overwriting it", func() {
		in := newDriverInput("B456")
		in.Address.State = "NJ"
		in.Address.City = "Newark"

		_, err := s.service.CreateDriver(s.ctx, in)
		s.Require().NoError(err)

		tables := s.mem.Dump()
		s.Len(tables.RegZips, 1)
		s.Equal("NY", tables.RegZips["10001"].State)
		s.Equal("NYC", tables.RegZips["10001"].City)
		s.Len(tables.RegAddresses, 2, "addresses are never shared between drivers")
	})

	s.Run("duplicate licence is a conflict and writes nothing", func() {
		before := s.mem.Dump()

		in := newDriverInput("A123")
		in.Address.ZipCode = "94105"
		_, err := s.service.CreateDriver(s.ctx, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal(before, s.mem.Dump())
	})
}

func (s *RecordsServiceSuite) TestCreateDriverRollsBackOnFailure() {
	s.faults.insertDriver = errDiskFull

	in := newDriverInput("A123")
	_, err := s.service.CreateDriver(s.ctx, in)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.ErrorIs(err, errDiskFull)

	tables := s.mem.Dump()
	s.Empty(tables.RegZips)
	s.Empty(tables.RegAddresses)
	s.Empty(tables.Drivers)
}

func (s *RecordsServiceSuite) TestCreateDriverIgnoresCallerCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	driverID, err := s.service.CreateDriver(ctx, newDriverInput("A123"))
	s.Require().NoError(err)
	s.NoError(s.faults.seenCtxErr)
	s.Contains(s.mem.Dump().Drivers, driverID)
}

func (s *RecordsServiceSuite) TestUpdateDriver() {
	driverID := s.createDriverWithVehicles("A123")
	original := s.mem.Dump().Drivers[driverID]

	s.Run("returns the stored row and keeps the same address id", func() {
		in := newDriverInput("A123-R")
		in.Driver.LastName = "Roe"
		in.Driver.WeightPounds = 150
		in.Address = models.RegistrationAddressInput{
			ZipCode: "11201",
			State:   "NY",
			City:    "Brooklyn",
			Street:  "Court St",
			House:   "7B",
		}

		updated, err := s.service.UpdateDriver(s.ctx, driverID, in)
		s.Require().NoError(err)
		s.Equal(driverID, updated.DriverID)
		s.Equal(in.Driver, updated.Driver)
		s.Equal(original.AddressID, updated.AddressID)

		tables := s.mem.Dump()
		s.Len(tables.RegAddresses, 1)
		addr := tables.RegAddresses[original.AddressID]
		s.Equal("11201", addr.ZipCode)
		s.Equal("Court St", addr.Street)
		s.Equal("7B", addr.House)
		s.Contains(tables.RegZips, "11201")
		s.Contains(tables.RegZips, "10001")
	})

	s.Run("unknown driver is not found and writes nothing", func() {
		before := s.mem.Dump()

		in := newDriverInput("Z999")
		in.Address.ZipCode = "30301"
		_, err := s.service.UpdateDriver(s.ctx, driverID+100, in)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
		s.Equal(before, s.mem.Dump())
	})

	s.Run("failure after the address write rolls back the address", func() {
		before := s.mem.Dump()
		s.faults.updateDriver = errDiskFull
		defer func() { s.faults.updateDriver = nil }()

		in := newDriverInput("A123")
		in.Address.ZipCode = "60601"
		in.Address.Street = "Michigan Ave"
		_, err := s.service.UpdateDriver(s.ctx, driverID, in)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.Equal(before, s.mem.Dump())
	})

	s.Run("licence taken by another driver is a conflict", func() {
		s.createDriverWithVehicles("C789")

		_, err := s.service.UpdateDriver(s.ctx, driverID, newDriverInput("C789"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *RecordsServiceSuite) TestDeleteDriverCascades() {
	driverID := s.createDriverWithVehicles("A123", 1, 2)
	otherID := s.createDriverWithVehicles("B456", 3)

	_, err := s.service.CreateNotice(s.ctx, newNoticeInput("N-1", 1))
	s.Require().NoError(err)
	_, err = s.service.CreateNotice(s.ctx, newNoticeInput("N-OTHER", 3))
	s.Require().NoError(err)
	a1, err := s.mem.SeedAction("N-1")
	s.Require().NoError(err)
	a2, err := s.mem.SeedAction("N-1")
	s.Require().NoError(err)
	otherAction, err := s.mem.SeedAction("N-OTHER")
	s.Require().NoError(err)
	addressID := s.mem.Dump().Drivers[driverID].AddressID

	deleted, err := s.service.DeleteDriver(s.ctx, driverID)
	s.Require().NoError(err)
	s.True(deleted)

	tables := s.mem.Dump()
	s.NotContains(tables.Actions, a1)
	s.NotContains(tables.Actions, a2)
	s.NotContains(tables.Notices, "N-1")
	s.NotContains(tables.Vehicles, int64(1))
	s.NotContains(tables.Vehicles, int64(2))
	s.NotContains(tables.Drivers, driverID)
	s.Contains(tables.RegAddresses, addressID, "registration address is left behind")

	s.Contains(tables.Drivers, otherID)
	s.Contains(tables.Vehicles, int64(3))
	s.Contains(tables.Notices, "N-OTHER")
	s.Contains(tables.Actions, otherAction)
}

func (s *RecordsServiceSuite) TestDeleteDriverWithoutVehicles() {
	driverID := s.createDriverWithVehicles("A123")

	deleted, err := s.service.DeleteDriver(s.ctx, driverID)
	s.Require().NoError(err)
	s.True(deleted)
	s.Empty(s.mem.Dump().Drivers)
}

func (s *RecordsServiceSuite) TestDeleteDriverNotFound() {
	s.createDriverWithVehicles("A123", 1)
	before := s.mem.Dump()

	deleted, err := s.service.DeleteDriver(s.ctx, 999)
	s.Require().NoError(err)
	s.False(deleted)
	s.Equal(before, s.mem.Dump())
}

func (s *RecordsServiceSuite) TestDeleteDriverRollsBackOnFailure() {
	driverID := s.createDriverWithVehicles("A123", 1, 2)
	_, err := s.service.CreateNotice(s.ctx, newNoticeInput("N-1", 1))
	s.Require().NoError(err)
	_, err = s.mem.SeedAction("N-1")
	s.Require().NoError(err)
	before := s.mem.Dump()

	s.faults.deleteVehicle = errDiskFull
	deleted, err := s.service.DeleteDriver(s.ctx, driverID)
	s.Require().Error(err)
	s.False(deleted)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(before, s.mem.Dump(), "no action, notice, vehicle or driver may be removed")
}
