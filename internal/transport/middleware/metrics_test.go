package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	got []recordedRequest
}

func (f *fakeHTTPMetrics) HTTPRequest(method, route string, status int, _ time.Duration) {
	f.got = append(f.got, recordedRequest{method, route, status})
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	m := &fakeHTTPMetrics{}
	h := Metrics(m)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/entries/craic", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	want := []recordedRequest{
		{http.MethodGet, "GET /entries/{slug}", http.StatusOK},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}
	if len(m.got) != len(want) {
		t.Fatalf("recorded %d requests, want %d: %+v", len(m.got), len(want), m.got)
	}
	for i := range want {
		if m.got[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, m.got[i], want[i])
		}
	}
}
