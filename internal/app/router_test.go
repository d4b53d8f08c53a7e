package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ridepool/internal/config"
	"ridepool/internal/repository/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testClient struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	store := memory.NewStore()
	cfg := &config.Config{
		Auth:    config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Booking: config.BookingConfig{MaxAttempts: 3},
	}
	storage := Storage{Tx: store, Repos: store.Repositories(), Close: func() error { return nil }}
	return &testClient{t: t, engine: NewEngine(cfg, storage, nil, nil)}
}

func (tc *testClient) do(method, path, token string, body any) (int, map[string]any, []any) {
	tc.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			tc.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	tc.engine.ServeHTTP(w, req)

	var obj map[string]any
	var list []any
	if bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("[")) {
		_ = json.Unmarshal(w.Body.Bytes(), &list)
	} else {
		_ = json.Unmarshal(w.Body.Bytes(), &obj)
	}
	return w.Code, obj, list
}

// signup registers a user and returns their id and token.
func (tc *testClient) signup(name, role string) (string, string) {
	tc.t.Helper()
	email := name + "@example.com"
	code, user, _ := tc.do(http.MethodPost, "/users/register", "", gin.H{
		"name": name, "email": email, "password": "pw-" + name, "role": role,
	})
	if code != http.StatusCreated {
		tc.t.Fatalf("register %s: %d %v", name, code, user)
	}
	code, login, _ := tc.do(http.MethodPost, "/users/login", "", gin.H{"email": email, "password": "pw-" + name})
	if code != http.StatusOK {
		tc.t.Fatalf("login %s: %d %v", name, code, login)
	}
	return user["id"].(string), login["token"].(string)
}

func expect(t *testing.T, what string, got, want int, body map[string]any) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: expected %d, got %d (%v)", what, want, got, body)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	tc := newTestClient(t)

	code, body, _ := tc.do(http.MethodGet, "/health", "", nil)
	expect(t, "health", code, http.StatusOK, body)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	tc.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", w.Code)
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	tc := newTestClient(t)

	code, body, _ := tc.do(http.MethodPost, "/rides/book-ride", "", gin.H{"rideId": "r", "seats": 1})
	expect(t, "book without token", code, http.StatusUnauthorized, body)
}

func TestRouter_BookingFlow(t *testing.T) {
	tc := newTestClient(t)
	_, driverToken := tc.signup("driver", "driver")
	_, riderToken := tc.signup("rider", "rider")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	code, body, _ := tc.do(http.MethodPost, "/rides", riderToken, gin.H{"origin": "A", "destination": "B", "date": tomorrow, "time": "09:00", "seats": 2})
	expect(t, "rider offering ride", code, http.StatusForbidden, body)

	code, ride, _ := tc.do(http.MethodPost, "/rides", driverToken, gin.H{"origin": "A", "destination": "B", "date": tomorrow, "time": "09:00", "seats": 2})
	expect(t, "offer ride", code, http.StatusCreated, ride)
	rideID := ride["id"].(string)

	code, body, _ = tc.do(http.MethodPost, "/rides/book-ride", riderToken, gin.H{"rideId": rideID, "seats": 3})
	expect(t, "overbook", code, http.StatusConflict, body)

	code, body, _ = tc.do(http.MethodPost, "/rides/book-ride", riderToken, gin.H{"rideId": rideID, "seats": 0})
	expect(t, "zero seats", code, http.StatusBadRequest, body)

	code, booking, _ := tc.do(http.MethodPost, "/rides/book-ride", riderToken, gin.H{"rideId": rideID, "seats": 2})
	expect(t, "book", code, http.StatusCreated, booking)
	if booking["status"] != "pending" {
		t.Errorf("expected pending booking, got %v", booking["status"])
	}

	code, got, _ := tc.do(http.MethodGet, "/rides/"+rideID, riderToken, nil)
	expect(t, "get ride", code, http.StatusOK, got)
	if got["status"] != "full" || got["seats_available"] != float64(0) {
		t.Errorf("expected full ride, got %v", got)
	}

	bookingID := booking["id"].(string)
	code, body, _ = tc.do(http.MethodPost, "/bookings/"+bookingID+"/confirm", riderToken, nil)
	expect(t, "rider confirming", code, http.StatusForbidden, body)
	code, body, _ = tc.do(http.MethodPost, "/bookings/"+bookingID+"/confirm", driverToken, nil)
	expect(t, "driver confirming", code, http.StatusOK, body)

	code, _, list := tc.do(http.MethodGet, "/bookings", riderToken, nil)
	expect(t, "list bookings", code, http.StatusOK, nil)
	if len(list) != 1 {
		t.Errorf("expected 1 booking, got %d", len(list))
	}

	code, body, _ = tc.do(http.MethodPost, "/rides/cancel-ride", riderToken, gin.H{"rideId": rideID})
	expect(t, "rider cancelling ride", code, http.StatusForbidden, body)
	code, body, _ = tc.do(http.MethodPost, "/rides/cancel-ride", driverToken, gin.H{"rideId": rideID})
	expect(t, "driver cancelling ride", code, http.StatusOK, body)
	code, body, _ = tc.do(http.MethodPost, "/rides/cancel-ride", driverToken, gin.H{"rideId": rideID})
	expect(t, "second cancel", code, http.StatusConflict, body)

	code, body, _ = tc.do(http.MethodGet, "/rides/missing", riderToken, nil)
	expect(t, "unknown ride", code, http.StatusNotFound, body)
}

func TestRouter_RequestAndAgreementFlow(t *testing.T) {
	tc := newTestClient(t)
	driverID, driverToken := tc.signup("driver", "driver")
	riderID, riderToken := tc.signup("rider", "rider")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	code, vehicle, _ := tc.do(http.MethodPost, "/vehicles", driverToken, gin.H{"make": "Tata", "model": "Nexon", "plate": "MH12AB1234", "seats": 4})
	expect(t, "register vehicle", code, http.StatusCreated, vehicle)
	code, ride, _ := tc.do(http.MethodPost, "/rides", driverToken, gin.H{"origin": "A", "destination": "B", "date": tomorrow, "time": "18:30", "seats": 1})
	expect(t, "offer ride", code, http.StatusCreated, ride)
	rideID := ride["id"].(string)

	code, rideReq, _ := tc.do(http.MethodPost, "/ride-req/"+vehicle["id"].(string), riderToken, gin.H{"ride_id": rideID, "driver_id": driverID})
	expect(t, "request ride", code, http.StatusCreated, rideReq)

	code, _, inbox := tc.do(http.MethodGet, "/ride-req", driverToken, nil)
	expect(t, "driver inbox", code, http.StatusOK, nil)
	if len(inbox) != 1 {
		t.Fatalf("expected 1 request in inbox, got %d", len(inbox))
	}

	requestID := rideReq["id"].(string)
	code, body, _ := tc.do(http.MethodPost, "/accepted", riderToken, gin.H{"request_id": requestID})
	expect(t, "rider accepting", code, http.StatusForbidden, body)
	code, body, _ = tc.do(http.MethodPost, "/accepted", driverToken, gin.H{"request_id": requestID})
	expect(t, "driver accepting", code, http.StatusOK, body)
	code, body, _ = tc.do(http.MethodPost, "/rejected", driverToken, gin.H{"request_id": requestID})
	expect(t, "reject after accept", code, http.StatusConflict, body)

	code, agreement, _ := tc.do(http.MethodPost, "/agreements", riderToken, gin.H{"ride_id": rideID})
	expect(t, "create agreement", code, http.StatusCreated, agreement)
	agreementID := agreement["id"].(string)

	code, body, _ = tc.do(http.MethodPost, "/agreements/accept/"+riderID, driverToken, gin.H{"agreement_id": agreementID})
	expect(t, "path user is not caller", code, http.StatusForbidden, body)
	code, body, _ = tc.do(http.MethodPost, "/agreements/accept/"+driverID, driverToken, gin.H{"agreement_id": agreementID})
	expect(t, "driver accepting agreement", code, http.StatusOK, body)
	code, body, _ = tc.do(http.MethodPost, "/agreements/reject/"+riderID, riderToken, gin.H{"agreement_id": agreementID})
	expect(t, "reject resolved agreement", code, http.StatusConflict, body)

	code, _, mine := tc.do(http.MethodGet, "/agreements/"+riderID, riderToken, nil)
	expect(t, "list agreements", code, http.StatusOK, nil)
	if len(mine) != 1 {
		t.Errorf("expected 1 agreement, got %d", len(mine))
	}
	code, body, _ = tc.do(http.MethodGet, "/agreements/"+riderID, driverToken, nil)
	expect(t, "list someone else's agreements", code, http.StatusForbidden, body)
}
