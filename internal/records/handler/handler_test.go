package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"noticebase/internal/records/handler/mocks"
	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/requestcontext"
	"noticebase/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

// fakeAuth admits requests carrying any Authorization header.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router, fakeAuth)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// authed builds a request as RequireAuth would hand it on: bearer header set
// and the officer already in the context.
func (s *HandlerSuite) authed(method, path string, body any) *http.Request {
	req := testutil.WithBearer(testutil.NewJSONRequest(s.T(), method, path, body), "tok")
	req = testutil.WithRequestID(req, "req-1")
	return testutil.WithOfficer(req, "officer_user", "jti-1")
}

func driverBody() map[string]any {
	return map[string]any{
		"licence_number": "A123",
		"state_issue":    "NY",
		"last_name":      "Doe",
		"first_name":     "Jane",
		"dob":            "1990-04-12",
		"height_inches":  66,
		"weight_pounds":  140,
		"eyes_colour":    "Brown",
		"address": map[string]any{
			"zip_code": "10001",
			"state":    "NY",
			"city":     "NYC",
			"street":   "5th Ave",
			"house":    "10",
		},
	}
}

func noticeBody() map[string]any {
	return map[string]any{
		"notice_id":             "N-1",
		"car_id":                7,
		"violation_date_time":   "2026-03-01T14:30:00Z",
		"detachment":            "Midtown South",
		"violation_severity":    "Low",
		"notice_status":         "Active",
		"notification_sent":     false,
		"entry_date":            "2026-03-01",
		"expiry_date":           "2026-09-01",
		"violation_description": "Running a red light",
		"violation_zip":         map[string]any{"zip_code": "10018", "state": "NY", "city": "NYC", "district": "Manhattan"},
		"violation_address":     map[string]any{"street": "W 34th St"},
	}
}

func (s *HandlerSuite) TestWritesRequireAuth() {
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/drivers"},
		{http.MethodPut, "/drivers/1"},
		{http.MethodDelete, "/drivers/1"},
		{http.MethodPost, "/notices"},
		{http.MethodPut, "/notices/N-1"},
		{http.MethodDelete, "/notices/N-1"},
	} {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), tc.method, tc.path))
		s.Equal(http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func (s *HandlerSuite) TestCreateDriver() {
	s.Run("decodes the body and returns 201", func() {
		s.service.EXPECT().CreateDriver(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in models.DriverInput) (int64, error) {
				s.Equal("A123", in.Driver.LicenceNumber)
				s.Equal(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), in.Driver.DOB)
				s.Equal("10001", in.Address.ZipCode)
				s.Equal("5th Ave", in.Address.Street)
				return 42, nil
			})

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/drivers", driverBody()))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal(float64(42), (*resp)["driver_id"])
		s.Equal("1990-04-12", (*resp)["dob"])
	})

	s.Run("missing licence is a validation error", func() {
		body := driverBody()
		delete(body, "licence_number")

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/drivers", body))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("bad date is a bad request", func() {
		body := driverBody()
		body["dob"] = "12/04/1990"

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/drivers", body))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("passes the officer and request id to the service", func() {
		s.service.EXPECT().CreateDriver(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ models.DriverInput) (int64, error) {
				s.Equal("officer_user", requestcontext.Subject(ctx))
				s.Equal("jti-1", requestcontext.TokenID(ctx))
				s.Equal("req-1", requestcontext.RequestID(ctx))
				return 1, nil
			})

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/drivers", driverBody()))

		s.Equal(http.StatusCreated, rr.Code)
	})

	s.Run("duplicate licence is a conflict", func() {
		s.service.EXPECT().CreateDriver(gomock.Any(), gomock.Any()).
			Return(int64(0), dErrors.New(dErrors.CodeConflict, "driver conflicts with an existing record"))

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/drivers", driverBody()))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("internal errors are 500 without detail", func() {
		s.service.EXPECT().CreateDriver(gomock.Any(), gomock.Any()).
			Return(int64(0), dErrors.Wrap(errors.New("disk full"), dErrors.CodeInternal, "failed to create driver"))

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/drivers", driverBody()))

		s.Equal(http.StatusInternalServerError, rr.Code)
		s.NotContains(rr.Body.String(), "disk full")
	})
}

func (s *HandlerSuite) TestUpdateAndDeleteDriver() {
	s.Run("update returns the stored row", func() {
		s.service.EXPECT().UpdateDriver(gomock.Any(), int64(5), gomock.Any()).
			Return(&models.DriverRecord{DriverID: 5, Driver: models.Driver{LicenceNumber: "A123", LastName: "Smith"}}, nil)

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPut, "/drivers/5", driverBody()))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "last_name", "Smith")
	})

	s.Run("update of a missing driver is 404", func() {
		s.service.EXPECT().UpdateDriver(gomock.Any(), int64(9), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "driver not found"))

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPut, "/drivers/9", driverBody()))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("non-numeric id is a bad request", func() {
		rr := testutil.DoRequest(s.router, s.authed(http.MethodDelete, "/drivers/abc", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("delete reports success", func() {
		s.service.EXPECT().DeleteDriver(gomock.Any(), int64(5)).Return(true, nil)

		rr := testutil.DoRequest(s.router, s.authed(http.MethodDelete, "/drivers/5", nil))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "message", "Driver 5 deleted successfully")
	})

	s.Run("delete of a missing driver is 404", func() {
		s.service.EXPECT().DeleteDriver(gomock.Any(), int64(6)).Return(false, nil)

		rr := testutil.DoRequest(s.router, s.authed(http.MethodDelete, "/drivers/6", nil))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestNotices() {
	s.Run("create decodes dates and nested address", func() {
		s.service.EXPECT().CreateNotice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in models.NoticeInput) (string, error) {
				s.Equal("N-1", in.Notice.NoticeID)
				s.Equal(int64(7), in.Notice.CarID)
				s.Equal(models.SeverityLow, in.Notice.ViolationSeverity)
				s.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), in.Notice.ExpiryDate)
				s.Equal("Manhattan", in.ViolationZip.District)
				s.Equal("W 34th St", in.ViolationAddress.Street)
				return "N-1", nil
			})

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/notices", noticeBody()))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "notice_id", "N-1")
	})

	s.Run("create for a missing vehicle is a validation error", func() {
		s.service.EXPECT().CreateNotice(gomock.Any(), gomock.Any()).
			Return("", dErrors.New(dErrors.CodeValidation, "vehicle not found"))

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPost, "/notices", noticeBody()))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("update uses the path id", func() {
		s.service.EXPECT().UpdateNotice(gomock.Any(), "N-9", gomock.Any()).
			Return(&models.NoticeRecord{Notice: models.Notice{NoticeID: "N-9", CarID: 7}}, nil)

		rr := testutil.DoRequest(s.router, s.authed(http.MethodPut, "/notices/N-9", noticeBody()))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "notice_id", "N-9")
	})

	s.Run("delete of a missing notice is 404", func() {
		s.service.EXPECT().DeleteNotice(gomock.Any(), "N-0").Return(false, nil)

		rr := testutil.DoRequest(s.router, s.authed(http.MethodDelete, "/notices/N-0", nil))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("list for a driver without notices is an empty array", func() {
		s.service.EXPECT().ListNoticesByDriver(gomock.Any(), int64(3)).Return(nil, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/notices/3"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`[]`, rr.Body.String())
	})
}

func (s *HandlerSuite) TestReads() {
	s.Run("list drivers", func() {
		s.service.EXPECT().ListDrivers(gomock.Any()).
			Return([]models.DriverSummary{{DriverID: 1, StateIssue: "NY", LastName: "Doe", FirstName: "Jane"}}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/drivers"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`[{"driver_id":1,"state_issue":"NY","last_name":"Doe","first_name":"Jane"}]`, rr.Body.String())
	})

	s.Run("get missing driver is 404", func() {
		s.service.EXPECT().GetDriver(gomock.Any(), int64(8)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "driver not found"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/drivers/8"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}
