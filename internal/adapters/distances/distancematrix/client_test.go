package distancematrix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"dog-breed-recommender/internal/domain/records"
	"dog-breed-recommender/internal/platform/httpclient"
)

// roundTripFunc permite simular la API sin red.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func okBody(meters int) string {
	return fmt.Sprintf(`{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":%d}}]}]}`, meters)
}

func newTestClient(rt roundTripFunc) *Client {
	hc := httpclient.NewWithTransport(time.Second, rt)
	hc.BaseURL = "http://matrix.test"
	return NewWithHTTP(hc, "test-key")
}

func TestDistance_ParsesKilometers(t *testing.T) {
	var gotURL string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(http.StatusOK, okBody(4250)), nil
	})

	km, err := c.Distance(context.Background(), "Enge", "Alt-Wiedikon")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if math.Abs(km-4.25) > 1e-9 {
		t.Errorf("km = %v, want 4.25", km)
	}

	for _, want := range []string{"origins=Enge", "destinations=Alt-Wiedikon", "key=test-key", "units=metric"} {
		if !strings.Contains(gotURL, want) {
			t.Errorf("request url %q missing %q", gotURL, want)
		}
	}
}

func TestDistance_EmptyDistrictFails(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	if _, err := c.Distance(context.Background(), "", "Enge"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDistance_NoRoute(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		body := `{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS","distance":{"value":0}}]}]}`
		return jsonResponse(http.StatusOK, body), nil
	})

	if _, err := c.Distance(context.Background(), "Enge", "Atlantis"); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestDistance_HTTPErrorSurfaces(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{"status":"REQUEST_DENIED"}`), nil
	})

	_, err := c.Distance(context.Background(), "Enge", "Alt-Wiedikon")
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected HTTPError 403, got %v", err)
	}
}

func TestFetchTable_AllPairsLowerIDFirst(t *testing.T) {
	calls := 0
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, okBody(1000*calls)), nil
	})

	districts := []records.District{
		{ID: 3, Name: "Fluntern"},
		{ID: 1, Name: "Enge"},
		{ID: 2, Name: "Alt-Wiedikon"},
	}

	table, err := c.FetchTable(context.Background(), districts)
	if err != nil {
		t.Fatalf("FetchTable: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (pairs of 3 districts)", calls)
	}
	if len(table) != 3 {
		t.Fatalf("table size = %d, want 3", len(table))
	}
	for pair := range table {
		if pair[0] >= pair[1] {
			t.Errorf("pair %v not normalized lower-id first", pair)
		}
	}
}

func TestFetchTable_NeedsTwoDistricts(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) { return nil, nil })

	_, err := c.FetchTable(context.Background(), []records.District{{ID: 1, Name: "Enge"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWriteCSV_RoundTripsThroughLoader(t *testing.T) {
	table := map[[2]int]float64{
		{1, 2}: 4.25,
		{1, 3}: 0.0,
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "district_a,district_b,distance_km\n") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "1,2,4.250") {
		t.Errorf("missing pair row: %q", out)
	}
}
