package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"noticebase/internal/auth/credentials"
	authhandler "noticebase/internal/auth/handler"
	authservice "noticebase/internal/auth/service"
	"noticebase/internal/auth/store/revocation"
	jwttoken "noticebase/internal/jwt_token"
	"noticebase/internal/platform/middleware"
	recordshandler "noticebase/internal/records/handler"
	recordsservice "noticebase/internal/records/service"
	"noticebase/internal/records/store"
	"noticebase/pkg/testutil"
)

type testApp struct {
	router http.Handler
	mem    *store.InMemory
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := bcrypt.GenerateFromPassword([]byte("officer_password"), bcrypt.MinCost)
	require.NoError(t, err)

	mem := store.NewInMemory()
	jwt := jwttoken.NewJWTService("test-key", "noticebase")
	trl := revocation.NewInMemoryTRL()
	auth := authservice.New(credentials.NewInMemory(map[string]string{"officer_user": string(hash)}), trl, jwt)
	records := recordsservice.New(recordsservice.NewInMemoryTx(mem), recordsservice.WithLogger(logger))

	router := NewRouter(Dependencies{
		Logger:      logger,
		Records:     recordshandler.New(records, logger),
		Auth:        authhandler.New(auth, logger),
		RequireAuth: middleware.RequireAuth(jwttoken.NewJWTServiceAdapter(jwt), trl, logger),
	})
	return &testApp{router: router, mem: mem}
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "officer_user",
		"password": "officer_password",
	})
	rr := testutil.DoRequest(a.router, req)
	require.Equal(t, http.StatusOK, rr.Code)
	return testutil.UnmarshalResponse[authservice.TokenResult](t, rr).AccessToken
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	rr := testutil.DoRequest(app.router, testutil.NewRequest(t, http.MethodGet, "/"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestDriverLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	driver := map[string]any{
		"licence_number": "A123",
		"state_issue":    "NY",
		"last_name":      "Doe",
		"first_name":     "Jane",
		"dob":            "1990-04-12",
		"height_inches":  66,
		"weight_pounds":  140,
		"eyes_colour":    "Brown",
		"address": map[string]any{
			"zip_code": "10001", "state": "NY", "city": "NYC", "street": "5th Ave", "house": "10",
		},
	}

	var driverID float64
	testutil.Given(t, "an authenticated officer", func(t *testing.T) {
		testutil.When(t, "a driver is created", func(t *testing.T) {
			rr := testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/drivers", driver), token))
			require.Equal(t, http.StatusCreated, rr.Code)
			resp := testutil.UnmarshalResponse[map[string]any](t, rr)
			driverID = (*resp)["driver_id"].(float64)

			testutil.Then(t, "the zip, address and driver rows exist and reference each other", func(t *testing.T) {
				tables := app.mem.Dump()
				require.Contains(t, tables.RegZips, "10001")
				require.Len(t, tables.RegAddresses, 1)
				require.Len(t, tables.Drivers, 1)
				d := tables.Drivers[int64(driverID)]
				assert.Equal(t, "A123", d.LicenceNumber)
				addr := tables.RegAddresses[d.AddressID]
				assert.Equal(t, "10001", addr.ZipCode)
				assert.Equal(t, "5th Ave", addr.Street)
			})
			testutil.And(t, "moving the driver to a new ZIP updates the same address row", func(t *testing.T) {
				moved := map[string]any{}
				for k, v := range driver {
					moved[k] = v
				}
				moved["address"] = map[string]any{
					"zip_code": "10002", "state": "NY", "city": "NYC", "street": "Orchard St", "house": "3",
				}
				rr := testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, "/drivers/1", moved), token))
				require.Equal(t, http.StatusOK, rr.Code)

				tables := app.mem.Dump()
				require.Len(t, tables.RegAddresses, 1)
				assert.Contains(t, tables.RegZips, "10001")
				assert.Contains(t, tables.RegZips, "10002")
				addr := tables.RegAddresses[tables.Drivers[int64(driverID)].AddressID]
				assert.Equal(t, "10002", addr.ZipCode)
				assert.Equal(t, "Orchard St", addr.Street)
			})
		})

		testutil.When(t, "a notice is issued against the driver's vehicle", func(t *testing.T) {
			require.NoError(t, app.mem.SeedVehicle(7, int64(driverID)))
			notice := map[string]any{
				"notice_id":             "N-1",
				"car_id":                7,
				"violation_date_time":   "2026-03-01T14:30:00Z",
				"detachment":            "Midtown South",
				"violation_severity":    "High",
				"notice_status":         "Active",
				"entry_date":            "2026-03-01",
				"expiry_date":           "2026-09-01",
				"violation_description": "Running a red light",
				"violation_zip":         map[string]any{"zip_code": "10018", "state": "NY", "city": "NYC", "district": "Manhattan"},
				"violation_address":     map[string]any{"street": "W 34th St"},
			}
			rr := testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/notices", notice), token))
			require.Equal(t, http.StatusCreated, rr.Code)

			testutil.Then(t, "it is listed for the driver", func(t *testing.T) {
				rr := testutil.DoRequest(app.router, testutil.NewRequest(t, http.MethodGet, "/notices/1"))
				require.Equal(t, http.StatusOK, rr.Code)
				notices := testutil.UnmarshalResponse[[]map[string]any](t, rr)
				require.Len(t, *notices, 1)
				assert.Equal(t, "N-1", (*notices)[0]["notice_id"])
			})
		})

		testutil.When(t, "the driver is deleted", func(t *testing.T) {
			_, err := app.mem.SeedAction("N-1")
			require.NoError(t, err)

			rr := testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/drivers/1"), token))
			require.Equal(t, http.StatusOK, rr.Code)

			testutil.Then(t, "vehicles, notices and actions are gone but addresses remain", func(t *testing.T) {
				tables := app.mem.Dump()
				assert.Empty(t, tables.Drivers)
				assert.Empty(t, tables.Vehicles)
				assert.Empty(t, tables.Notices)
				assert.Empty(t, tables.Actions)
				assert.Len(t, tables.RegAddresses, 1)
				assert.Len(t, tables.ViolationAddresses, 1)
			})
		})
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t)

	rr := testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/login"), token))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/drivers/1"), token))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	rr = testutil.DoRequest(app.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodPut, "/login"), token))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestWritesWithoutTokenAreRejected(t *testing.T) {
	app := newTestApp(t)
	rr := testutil.DoRequest(app.router, testutil.NewJSONRequest(t, http.MethodPost, "/drivers", map[string]any{}))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	assert.Empty(t, app.mem.Dump().Drivers)
}
