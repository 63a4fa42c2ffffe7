package store

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"noticebase/internal/records/models"
	"noticebase/pkg/platform/sentinel"
)

// Tables is the full in-memory dataset. Foreign keys are enforced the way the
// PostgreSQL schema enforces them, so deletion order matters here too.
type Tables struct {
	RegZips            map[string]models.ZipCode
	ViolationZips      map[string]models.ZipCode
	RegAddresses       map[int64]models.RegistrationAddress
	ViolationAddresses map[int64]models.ViolationAddress
	Drivers            map[int64]models.DriverRecord
	Vehicles           map[int64]models.Vehicle
	Notices            map[string]models.NoticeRecord
	Actions            map[int64]models.Action

	lastRegAddressID       int64
	lastViolationAddressID int64
	lastDriverID           int64
	lastActionID           int64
}

func newTables() *Tables {
	return &Tables{
		RegZips:            make(map[string]models.ZipCode),
		ViolationZips:      make(map[string]models.ZipCode),
		RegAddresses:       make(map[int64]models.RegistrationAddress),
		ViolationAddresses: make(map[int64]models.ViolationAddress),
		Drivers:            make(map[int64]models.DriverRecord),
		Vehicles:           make(map[int64]models.Vehicle),
		Notices:            make(map[string]models.NoticeRecord),
		Actions:            make(map[int64]models.Action),
	}
}

func (t *Tables) clone() *Tables {
	c := *t
	c.RegZips = maps.Clone(t.RegZips)
	c.ViolationZips = maps.Clone(t.ViolationZips)
	c.RegAddresses = maps.Clone(t.RegAddresses)
	c.ViolationAddresses = maps.Clone(t.ViolationAddresses)
	c.Drivers = maps.Clone(t.Drivers)
	c.Vehicles = maps.Clone(t.Vehicles)
	c.Notices = maps.Clone(t.Notices)
	c.Actions = maps.Clone(t.Actions)
	return &c
}

// InMemory keeps records in process. Transactions are serialised and run
// against a private copy that replaces the live tables only on success.
type InMemory struct {
	mu     sync.Mutex
	tables *Tables
}

func NewInMemory() *InMemory {
	return &InMemory{tables: newTables()}
}

// Atomically runs fn against a copy of the tables and publishes the copy if
// fn returns nil.
func (s *InMemory) Atomically(ctx context.Context, fn func(tx *MemoryTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &MemoryTx{t: s.tables.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.tables = tx.t
	return nil
}

// Dump returns a copy of the committed tables.
func (s *InMemory) Dump() *Tables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables.clone()
}

// SeedVehicle registers a vehicle for an existing driver.
func (s *InMemory) SeedVehicle(carID, driverID int64) error {
	return s.Atomically(context.Background(), func(tx *MemoryTx) error {
		if _, ok := tx.t.Drivers[driverID]; !ok {
			return fmt.Errorf("vehicle %d references driver %d: %w", carID, driverID, sentinel.ErrConflict)
		}
		if _, ok := tx.t.Vehicles[carID]; ok {
			return fmt.Errorf("vehicle %d: %w", carID, sentinel.ErrConflict)
		}
		tx.t.Vehicles[carID] = models.Vehicle{CarID: carID, DriverID: driverID}
		return nil
	})
}

// SeedAction records a legal action against an existing notice.
func (s *InMemory) SeedAction(noticeID string) (int64, error) {
	var actionID int64
	err := s.Atomically(context.Background(), func(tx *MemoryTx) error {
		if _, ok := tx.t.Notices[noticeID]; !ok {
			return fmt.Errorf("action references notice %q: %w", noticeID, sentinel.ErrConflict)
		}
		tx.t.lastActionID++
		actionID = tx.t.lastActionID
		tx.t.Actions[actionID] = models.Action{ActionID: actionID, NoticeID: noticeID}
		return nil
	})
	return actionID, err
}

// MemoryTx is the view of the tables inside one Atomically call. It is not
// safe for use after Atomically returns.
type MemoryTx struct {
	t *Tables
}

func (tx *MemoryTx) zips(kind models.ZipKind) (map[string]models.ZipCode, error) {
	switch kind {
	case models.ZipKindRegistration:
		return tx.t.RegZips, nil
	case models.ZipKindViolation:
		return tx.t.ViolationZips, nil
	}
	return nil, fmt.Errorf("unknown zip kind %q: %w", kind, sentinel.ErrInvalidState)
}

func (tx *MemoryTx) ZipExists(_ context.Context, kind models.ZipKind, code string) (bool, error) {
	zips, err := tx.zips(kind)
	if err != nil {
		return false, err
	}
	_, ok := zips[code]
	return ok, nil
}

func (tx *MemoryTx) InsertZip(_ context.Context, zip models.ZipCode) error {
	zips, err := tx.zips(zip.Kind)
	if err != nil {
		return err
	}
	if _, ok := zips[zip.Code]; ok {
		return fmt.Errorf("zip %q: %w", zip.Code, sentinel.ErrConflict)
	}
	zips[zip.Code] = zip
	return nil
}

func (tx *MemoryTx) InsertRegistrationAddress(_ context.Context, addr models.RegistrationAddress) (int64, error) {
	if _, ok := tx.t.RegZips[addr.ZipCode]; !ok {
		return 0, fmt.Errorf("address references zip %q: %w", addr.ZipCode, sentinel.ErrConflict)
	}
	tx.t.lastRegAddressID++
	addr.AddressID = tx.t.lastRegAddressID
	tx.t.RegAddresses[addr.AddressID] = addr
	return addr.AddressID, nil
}

func (tx *MemoryTx) UpdateRegistrationAddress(_ context.Context, addr models.RegistrationAddress) error {
	if _, ok := tx.t.RegAddresses[addr.AddressID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := tx.t.RegZips[addr.ZipCode]; !ok {
		return fmt.Errorf("address references zip %q: %w", addr.ZipCode, sentinel.ErrConflict)
	}
	tx.t.RegAddresses[addr.AddressID] = addr
	return nil
}

func (tx *MemoryTx) InsertViolationAddress(_ context.Context, addr models.ViolationAddress) (int64, error) {
	if _, ok := tx.t.ViolationZips[addr.ZipCode]; !ok {
		return 0, fmt.Errorf("address references zip %q: %w", addr.ZipCode, sentinel.ErrConflict)
	}
	tx.t.lastViolationAddressID++
	addr.AddressID = tx.t.lastViolationAddressID
	tx.t.ViolationAddresses[addr.AddressID] = addr
	return addr.AddressID, nil
}

func (tx *MemoryTx) UpdateViolationAddress(_ context.Context, addr models.ViolationAddress) error {
	if _, ok := tx.t.ViolationAddresses[addr.AddressID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := tx.t.ViolationZips[addr.ZipCode]; !ok {
		return fmt.Errorf("address references zip %q: %w", addr.ZipCode, sentinel.ErrConflict)
	}
	tx.t.ViolationAddresses[addr.AddressID] = addr
	return nil
}

func (tx *MemoryTx) licenceTaken(licence string, except int64) bool {
	for id, d := range tx.t.Drivers {
		if id != except && d.LicenceNumber == licence {
			return true
		}
	}
	return false
}

func (tx *MemoryTx) InsertDriver(_ context.Context, addressID int64, driver models.Driver) (int64, error) {
	if _, ok := tx.t.RegAddresses[addressID]; !ok {
		return 0, fmt.Errorf("driver references address %d: %w", addressID, sentinel.ErrConflict)
	}
	if tx.licenceTaken(driver.LicenceNumber, 0) {
		return 0, fmt.Errorf("licence %q: %w", driver.LicenceNumber, sentinel.ErrConflict)
	}
	tx.t.lastDriverID++
	id := tx.t.lastDriverID
	tx.t.Drivers[id] = models.DriverRecord{DriverID: id, AddressID: addressID, Driver: driver}
	return id, nil
}

func (tx *MemoryTx) FindDriver(_ context.Context, driverID int64) (*models.DriverRecord, error) {
	d, ok := tx.t.Drivers[driverID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &d, nil
}

func (tx *MemoryTx) UpdateDriver(_ context.Context, driverID int64, driver models.Driver) error {
	existing, ok := tx.t.Drivers[driverID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if tx.licenceTaken(driver.LicenceNumber, driverID) {
		return fmt.Errorf("licence %q: %w", driver.LicenceNumber, sentinel.ErrConflict)
	}
	existing.Driver = driver
	tx.t.Drivers[driverID] = existing
	return nil
}

func (tx *MemoryTx) DeleteDriver(_ context.Context, driverID int64) error {
	for _, v := range tx.t.Vehicles {
		if v.DriverID == driverID {
			return fmt.Errorf("driver %d still owns vehicle %d: %w", driverID, v.CarID, sentinel.ErrConflict)
		}
	}
	delete(tx.t.Drivers, driverID)
	return nil
}

func (tx *MemoryTx) ListDrivers(_ context.Context) ([]models.DriverSummary, error) {
	ids := slices.Sorted(maps.Keys(tx.t.Drivers))
	out := make([]models.DriverSummary, 0, len(ids))
	for _, id := range ids {
		d := tx.t.Drivers[id]
		out = append(out, models.DriverSummary{
			DriverID:   d.DriverID,
			StateIssue: d.StateIssue,
			LastName:   d.LastName,
			FirstName:  d.FirstName,
		})
	}
	return out, nil
}

func (tx *MemoryTx) VehicleExists(_ context.Context, carID int64) (bool, error) {
	_, ok := tx.t.Vehicles[carID]
	return ok, nil
}

func (tx *MemoryTx) ListVehicleIDsByDriver(_ context.Context, driverID int64) ([]int64, error) {
	var ids []int64
	for id, v := range tx.t.Vehicles {
		if v.DriverID == driverID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (tx *MemoryTx) DeleteVehicle(_ context.Context, carID int64) error {
	for _, n := range tx.t.Notices {
		if n.CarID == carID {
			return fmt.Errorf("vehicle %d still has notice %q: %w", carID, n.NoticeID, sentinel.ErrConflict)
		}
	}
	delete(tx.t.Vehicles, carID)
	return nil
}

func (tx *MemoryTx) InsertNotice(_ context.Context, addressID int64, notice models.Notice) error {
	if _, ok := tx.t.Notices[notice.NoticeID]; ok {
		return fmt.Errorf("notice %q: %w", notice.NoticeID, sentinel.ErrConflict)
	}
	if _, ok := tx.t.Vehicles[notice.CarID]; !ok {
		return fmt.Errorf("notice references vehicle %d: %w", notice.CarID, sentinel.ErrConflict)
	}
	if _, ok := tx.t.ViolationAddresses[addressID]; !ok {
		return fmt.Errorf("notice references address %d: %w", addressID, sentinel.ErrConflict)
	}
	tx.t.Notices[notice.NoticeID] = models.NoticeRecord{AddressID: addressID, Notice: notice}
	return nil
}

func (tx *MemoryTx) FindNotice(_ context.Context, noticeID string) (*models.NoticeRecord, error) {
	n, ok := tx.t.Notices[noticeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &n, nil
}

func (tx *MemoryTx) UpdateNotice(_ context.Context, notice models.Notice) error {
	existing, ok := tx.t.Notices[notice.NoticeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := tx.t.Vehicles[notice.CarID]; !ok {
		return fmt.Errorf("notice references vehicle %d: %w", notice.CarID, sentinel.ErrConflict)
	}
	existing.Notice = notice
	tx.t.Notices[notice.NoticeID] = existing
	return nil
}

func (tx *MemoryTx) DeleteNotice(_ context.Context, noticeID string) error {
	for _, a := range tx.t.Actions {
		if a.NoticeID == noticeID {
			return fmt.Errorf("notice %q still has action %d: %w", noticeID, a.ActionID, sentinel.ErrConflict)
		}
	}
	delete(tx.t.Notices, noticeID)
	return nil
}

func (tx *MemoryTx) ListNoticeIDsByVehicle(_ context.Context, carID int64) ([]string, error) {
	var ids []string
	for id, n := range tx.t.Notices {
		if n.CarID == carID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (tx *MemoryTx) ListNoticesByDriver(_ context.Context, driverID int64) ([]models.NoticeRecord, error) {
	var out []models.NoticeRecord
	for _, n := range tx.t.Notices {
		if v, ok := tx.t.Vehicles[n.CarID]; ok && v.DriverID == driverID {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b models.NoticeRecord) int {
		return cmp.Compare(a.NoticeID, b.NoticeID)
	})
	return out, nil
}

func (tx *MemoryTx) DeleteActionsByNotice(_ context.Context, noticeID string) (int64, error) {
	var n int64
	for id, a := range tx.t.Actions {
		if a.NoticeID == noticeID {
			delete(tx.t.Actions, id)
			n++
		}
	}
	return n, nil
}
