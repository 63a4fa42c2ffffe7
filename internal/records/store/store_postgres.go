package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"noticebase/internal/records/models"
	"noticebase/pkg/platform/sentinel"
)

// Schema is the DDL for every table the record and auth stores touch.
//
//go:embed schema.sql
var Schema string

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore runs record queries against PostgreSQL. It holds no state
// beyond its handle; transaction scope is owned by the caller.
type PostgresStore struct {
	db DBTX
}

// NewPostgres constructs a store over a database handle or transaction.
func NewPostgres(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresTx constructs a store bound to one transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{db: tx}
}

func zipTable(kind models.ZipKind) (string, error) {
	switch kind {
	case models.ZipKindRegistration:
		return "reg_zip_code", nil
	case models.ZipKindViolation:
		return "violation_zip_code", nil
	}
	return "", fmt.Errorf("unknown zip kind %q: %w", kind, sentinel.ErrInvalidState)
}

func (s *PostgresStore) ZipExists(ctx context.Context, kind models.ZipKind, code string) (bool, error) {
	table, err := zipTable(kind)
	if err != nil {
		return false, err
	}
	var one int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE zip_code = $1`, code).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup zip: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) InsertZip(ctx context.Context, zip models.ZipCode) error {
	var err error
	switch zip.Kind {
	case models.ZipKindRegistration:
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO reg_zip_code (zip_code, state, city)
			VALUES ($1, $2, $3)
		`, zip.Code, zip.State, zip.City)
	case models.ZipKindViolation:
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO violation_zip_code (zip_code, state, city, district)
			VALUES ($1, $2, $3, $4)
		`, zip.Code, zip.State, zip.City, zip.District)
	default:
		return fmt.Errorf("unknown zip kind %q: %w", zip.Kind, sentinel.ErrInvalidState)
	}
	if err != nil {
		return classify(err, "insert zip")
	}
	return nil
}

func (s *PostgresStore) InsertRegistrationAddress(ctx context.Context, addr models.RegistrationAddress) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reg_address (zip_code, street, house)
		VALUES ($1, $2, $3)
		RETURNING address_id
	`, addr.ZipCode, addr.Street, addr.House).Scan(&id)
	if err != nil {
		return 0, classify(err, "insert registration address")
	}
	return id, nil
}

func (s *PostgresStore) UpdateRegistrationAddress(ctx context.Context, addr models.RegistrationAddress) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reg_address
		SET zip_code = $1,
			street = $2,
			house = $3
		WHERE address_id = $4
	`, addr.ZipCode, addr.Street, addr.House, addr.AddressID)
	if err != nil {
		return classify(err, "update registration address")
	}
	return requireRow(res, "update registration address")
}

func (s *PostgresStore) InsertViolationAddress(ctx context.Context, addr models.ViolationAddress) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO violation_address (zip_code, street)
		VALUES ($1, $2)
		RETURNING address_id
	`, addr.ZipCode, addr.Street).Scan(&id)
	if err != nil {
		return 0, classify(err, "insert violation address")
	}
	return id, nil
}

func (s *PostgresStore) UpdateViolationAddress(ctx context.Context, addr models.ViolationAddress) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE violation_address
		SET zip_code = $1,
			street = $2
		WHERE address_id = $3
	`, addr.ZipCode, addr.Street, addr.AddressID)
	if err != nil {
		return classify(err, "update violation address")
	}
	return requireRow(res, "update violation address")
}

func (s *PostgresStore) InsertDriver(ctx context.Context, addressID int64, d models.Driver) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO driver_details (
			address_id, licence_number, state_issue, last_name, first_name,
			dob, height_inches, weight_pounds, eyes_colour
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING driver_id
	`, addressID, d.LicenceNumber, d.StateIssue, d.LastName, d.FirstName,
		d.DOB, d.HeightInches, d.WeightPounds, d.EyesColour).Scan(&id)
	if err != nil {
		return 0, classify(err, "insert driver")
	}
	return id, nil
}

func (s *PostgresStore) FindDriver(ctx context.Context, driverID int64) (*models.DriverRecord, error) {
	var r models.DriverRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT driver_id, address_id, licence_number, state_issue, last_name,
			first_name, dob, height_inches, weight_pounds, eyes_colour
		FROM driver_details
		WHERE driver_id = $1
	`, driverID).Scan(
		&r.DriverID, &r.AddressID, &r.LicenceNumber, &r.StateIssue, &r.LastName,
		&r.FirstName, &r.DOB, &r.HeightInches, &r.WeightPounds, &r.EyesColour,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find driver: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) UpdateDriver(ctx context.Context, driverID int64, d models.Driver) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE driver_details
		SET licence_number = $1,
			state_issue = $2,
			last_name = $3,
			first_name = $4,
			dob = $5,
			height_inches = $6,
			weight_pounds = $7,
			eyes_colour = $8
		WHERE driver_id = $9
	`, d.LicenceNumber, d.StateIssue, d.LastName, d.FirstName, d.DOB,
		d.HeightInches, d.WeightPounds, d.EyesColour, driverID)
	if err != nil {
		return classify(err, "update driver")
	}
	return requireRow(res, "update driver")
}

func (s *PostgresStore) DeleteDriver(ctx context.Context, driverID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM driver_details WHERE driver_id = $1`, driverID); err != nil {
		return classify(err, "delete driver")
	}
	return nil
}

func (s *PostgresStore) ListDrivers(ctx context.Context) ([]models.DriverSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT driver_id, state_issue, last_name, first_name
		FROM driver_details
		ORDER BY driver_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []models.DriverSummary
	for rows.Next() {
		var d models.DriverSummary
		if err := rows.Scan(&d.DriverID, &d.StateIssue, &d.LastName, &d.FirstName); err != nil {
			return nil, fmt.Errorf("scan driver summary: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) VehicleExists(ctx context.Context, carID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM car_details WHERE car_id = $1`, carID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup vehicle: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) ListVehicleIDsByDriver(ctx context.Context, driverID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT car_id FROM car_details WHERE driver_id = $1 ORDER BY car_id`, driverID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vehicle id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) DeleteVehicle(ctx context.Context, carID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM car_details WHERE car_id = $1`, carID); err != nil {
		return classify(err, "delete vehicle")
	}
	return nil
}

func (s *PostgresStore) InsertNotice(ctx context.Context, addressID int64, n models.Notice) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notice_info (
			notice_id, car_id, address_id, violation_date_time, detachment,
			violation_severity, notice_status, notification_sent, entry_date,
			expiry_date, violation_description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, n.NoticeID, n.CarID, addressID, n.ViolationDateTime, n.Detachment,
		string(n.ViolationSeverity), string(n.NoticeStatus), n.NotificationSent, n.EntryDate,
		n.ExpiryDate, n.ViolationDescription)
	if err != nil {
		return classify(err, "insert notice")
	}
	return nil
}

const noticeColumns = `
	n.notice_id, n.car_id, n.address_id, n.violation_date_time, n.detachment,
	n.violation_severity, n.notice_status, n.notification_sent, n.entry_date,
	n.expiry_date, n.violation_description`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotice(row rowScanner) (*models.NoticeRecord, error) {
	var (
		r                models.NoticeRecord
		severity, status string
	)
	err := row.Scan(
		&r.NoticeID, &r.CarID, &r.AddressID, &r.ViolationDateTime, &r.Detachment,
		&severity, &status, &r.NotificationSent, &r.EntryDate,
		&r.ExpiryDate, &r.ViolationDescription,
	)
	if err != nil {
		return nil, err
	}
	r.ViolationSeverity = models.Severity(severity)
	r.NoticeStatus = models.NoticeStatus(status)
	return &r, nil
}

func (s *PostgresStore) FindNotice(ctx context.Context, noticeID string) (*models.NoticeRecord, error) {
	r, err := scanNotice(s.db.QueryRowContext(ctx, `SELECT `+noticeColumns+` FROM notice_info n WHERE n.notice_id = $1`, noticeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) UpdateNotice(ctx context.Context, n models.Notice) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE notice_info
		SET car_id = $1,
			violation_date_time = $2,
			detachment = $3,
			violation_severity = $4,
			notice_status = $5,
			notification_sent = $6,
			entry_date = $7,
			expiry_date = $8,
			violation_description = $9
		WHERE notice_id = $10
	`, n.CarID, n.ViolationDateTime, n.Detachment, string(n.ViolationSeverity),
		string(n.NoticeStatus), n.NotificationSent, n.EntryDate, n.ExpiryDate,
		n.ViolationDescription, n.NoticeID)
	if err != nil {
		return classify(err, "update notice")
	}
	return requireRow(res, "update notice")
}

func (s *PostgresStore) DeleteNotice(ctx context.Context, noticeID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notice_info WHERE notice_id = $1`, noticeID); err != nil {
		return classify(err, "delete notice")
	}
	return nil
}

func (s *PostgresStore) ListNoticeIDsByVehicle(ctx context.Context, carID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT notice_id FROM notice_info WHERE car_id = $1 ORDER BY notice_id`, carID)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan notice id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) ListNoticesByDriver(ctx context.Context, driverID int64) ([]models.NoticeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noticeColumns+`
		FROM notice_info n
		JOIN car_details c ON n.car_id = c.car_id
		WHERE c.driver_id = $1
		ORDER BY n.notice_id
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("list notices by driver: %w", err)
	}
	defer rows.Close()

	var out []models.NoticeRecord
	for rows.Next() {
		r, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteActionsByNotice(ctx context.Context, noticeID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM actions WHERE notice_id = $1`, noticeID)
	if err != nil {
		return 0, classify(err, "delete actions")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete actions rows affected: %w", err)
	}
	return n, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}
