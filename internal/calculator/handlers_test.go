package calculator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dotcalc/internal/observability"
	"dotcalc/internal/testutil"

	"github.com/go-chi/chi/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T, store *Store) http.Handler {
	t.Helper()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(store))
	return r
}

func createSession(t *testing.T, router http.Handler) StateResponse {
	t.Helper()
	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var resp StateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	return resp
}

func pressKeys(t *testing.T, router http.Handler, id string, keys ...string) (int, StateResponse, map[string]string) {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions/"+id+"/keys", KeysRequest{Keys: keys})
	w := testutil.ExecuteRequest(req, router)

	if w.Code != http.StatusOK {
		var body map[string]string
		testutil.DecodeJSONBody(t, w.Body, &body)
		return w.Code, StateResponse{}, body
	}

	var resp StateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	return w.Code, resp, nil
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter(t, NewStore(10))

	resp := createSession(t, router)
	if resp.SessionID == "" {
		t.Fatal("expected session id in response")
	}
	if resp.Display != "0" {
		t.Fatalf("expected display %q, got %q", "0", resp.Display)
	}
	if resp.Error {
		t.Fatal("did not expect error flag on a new session")
	}
}

func TestPressKeysComputesResult(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	code, resp, _ := pressKeys(t, router, id, "5", "+", "3", "=")
	testutil.CheckResponseCode(t, http.StatusOK, code)

	if resp.SessionID != id {
		t.Fatalf("expected session id %q, got %q", id, resp.SessionID)
	}
	if resp.Display != "8" {
		t.Fatalf("expected display %q, got %q", "8", resp.Display)
	}
	if len(resp.History) != 1 || resp.History[0].Expression != "5 + 3=" || resp.History[0].Result != "8" {
		t.Fatalf("unexpected history: %+v", resp.History)
	}
}

func TestPressKeysKeepsStateAcrossRequests(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	_, resp, _ := pressKeys(t, router, id, "1", "2", "*")
	if resp.Expression != "12 × " || resp.PendingOperator != "mul" {
		t.Fatalf("unexpected pending state: %+v", resp.State)
	}

	_, resp, _ = pressKeys(t, router, id, "2", "Enter")
	if resp.Display != "24" {
		t.Fatalf("expected display %q, got %q", "24", resp.Display)
	}
}

func TestPressKeysRejectsUnknownKey(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	code, _, body := pressKeys(t, router, id, "4", "x", "2")
	testutil.CheckResponseCode(t, http.StatusBadRequest, code)

	if !strings.Contains(body["error"], `"x"`) {
		t.Fatalf("expected error to name the key, got %q", body["error"])
	}

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodGet, "/calculator/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp StateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display != "4" {
		t.Fatalf("expected keys before the rejected one to apply, got display %q", resp.Display)
	}
}

func TestPressKeysValidatesBody(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "invalid json", body: `{"keys":`, want: "invalid request body"},
		{name: "no keys", body: `{"keys":[]}`, want: "no keys provided"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/calculator/sessions/"+id+"/keys", strings.NewReader(tc.body))
			w := testutil.ExecuteRequest(req, router)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, body["error"])
			}
		})
	}
}

func TestApplyAction(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	pressKeys(t, router, id, "1", "6")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions/"+id+"/actions", ActionRequest{Action: "sqrt"})
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp StateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display != "4" {
		t.Fatalf("expected display %q, got %q", "4", resp.Display)
	}
	if len(resp.History) != 1 || resp.History[0].Expression != "√(16)=" {
		t.Fatalf("unexpected history: %+v", resp.History)
	}
}

func TestApplyActionRejectsUnknownAction(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions/"+id+"/actions", ActionRequest{Action: "cbrt"})
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

func TestDivisionByZeroIsLoggedAndReported(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID

	code, resp, _ := pressKeys(t, router, id, "1", "0", "/", "0", "=")
	testutil.CheckResponseCode(t, http.StatusOK, code)

	if resp.Display != "Error" || !resp.Error {
		t.Fatalf("expected error state, got %+v", resp.State)
	}

	entries := logs.FilterMessage("calculator entered error state").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 fault log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["input"]; got != "=" {
		t.Fatalf("expected fault on input %q, got %#v", "=", got)
	}
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter(t, NewStore(10))

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{method: http.MethodGet, path: "/calculator/sessions/nope"},
		{method: http.MethodDelete, path: "/calculator/sessions/nope"},
		{method: http.MethodPost, path: "/calculator/sessions/nope/keys", body: KeysRequest{Keys: []string{"1"}}},
		{method: http.MethodPost, path: "/calculator/sessions/nope/actions", body: ActionRequest{Action: "c"}},
		{method: http.MethodDelete, path: "/calculator/sessions/nope/history"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, tc.method, tc.path, tc.body), router)
			testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestDeleteSession(t *testing.T) {
	store := NewStore(10)
	router := newTestRouter(t, store)
	id := createSession(t, router).SessionID

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodDelete, "/calculator/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)

	if store.Len() != 0 {
		t.Fatalf("expected 0 sessions, got %d", store.Len())
	}

	w = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodGet, "/calculator/sessions/"+id, nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}

func TestClearHistoryEndpoint(t *testing.T) {
	router := newTestRouter(t, NewStore(10))
	id := createSession(t, router).SessionID
	pressKeys(t, router, id, "2", "+", "2", "=")

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodDelete, "/calculator/sessions/"+id+"/history", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp StateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if len(resp.History) != 0 {
		t.Fatalf("expected empty history, got %+v", resp.History)
	}
	if resp.Display != "4" {
		t.Fatalf("expected display to survive, got %q", resp.Display)
	}
}

func TestCreateSessionWhenFull(t *testing.T) {
	router := newTestRouter(t, NewStore(1))
	createSession(t, router)

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusServiceUnavailable, w.Code)
}

func TestSessionGaugeTracksStore(t *testing.T) {
	store := NewStore(10)
	gauge := NewSessionGauge(store)

	if got := promtest.ToFloat64(gauge); got != 0 {
		t.Fatalf("expected 0 sessions, got %v", got)
	}

	store.Create()
	store.Create()

	if got := promtest.ToFloat64(gauge); got != 2 {
		t.Fatalf("expected 2 sessions, got %v", got)
	}
}
