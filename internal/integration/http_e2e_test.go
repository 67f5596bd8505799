//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	server "hotel_desk/internal/adapters/http_server"
	"hotel_desk/internal/app"
	"hotel_desk/internal/domain"
	filestore "hotel_desk/internal/storage/file"
)

// ---- helpers ----

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	auth := app.NewAuthService(ctx, store, app.BcryptHasher{Cost: 4}, app.AuthOptions{RestoreSession: true})
	inventory := app.NewInventoryService(ctx, store)
	notify := app.NewNotifier(time.Minute)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Auth:       auth,
		Inventory:  inventory,
		Notify:     notify,
		LoginLimit: rate.NewLimiter(rate.Limit(100), 100),
	})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body any) (int, []byte, http.Header) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	out, _ := io.ReadAll(res.Body)
	return res.StatusCode, out, res.Header
}

// ---- the test ----

func TestHTTP_EndToEnd_AdminFlow(t *testing.T) {
	ts := newTestServer(t)

	// Gated routes reject before login.
	if code, _, _ := do(t, "GET", ts.URL+"/v1/hotels", nil); code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status %d", code)
	}

	// Register, then a duplicate.
	reg := map[string]string{"firstName": "Awa", "email": "awa@example.sn", "password": "s3cret!"}
	if code, _, _ := do(t, "POST", ts.URL+"/v1/auth/register", reg); code != http.StatusCreated {
		t.Fatalf("register: status %d", code)
	}
	if code, _, _ := do(t, "POST", ts.URL+"/v1/auth/register", reg); code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", code)
	}

	// Bad credentials get the generic rejection; good ones open the session.
	if code, _, _ := do(t, "POST", ts.URL+"/v1/auth/login", map[string]string{"email": "awa@example.sn", "password": "nope"}); code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d", code)
	}
	if code, _, _ := do(t, "POST", ts.URL+"/v1/auth/login", map[string]string{"email": "awa@example.sn", "password": "s3cret!"}); code != http.StatusOK {
		t.Fatalf("login: status %d", code)
	}
	if code, body, _ := do(t, "GET", ts.URL+"/v1/auth/me", nil); code != http.StatusOK {
		t.Fatalf("me: status %d %s", code, body)
	}

	// Create two hotels; the first submission without a price is rejected
	// at the boundary.
	if code, _, _ := do(t, "POST", ts.URL+"/v1/hotels", map[string]any{"name": "Zeta", "imageUrl": "x.jpg"}); code != http.StatusBadRequest {
		t.Fatalf("invalid create: status %d", code)
	}
	var zeta, alpha domain.Hotel
	{
		code, body, _ := do(t, "POST", ts.URL+"/v1/hotels", map[string]any{
			"name": "Zeta", "city": "Dakar", "country": "Sénégal", "rating": 3.0,
			"price": 20000, "imageUrl": "zeta.jpg",
		})
		if code != http.StatusCreated {
			t.Fatalf("create zeta: status %d %s", code, body)
		}
		if err := json.Unmarshal(body, &zeta); err != nil {
			t.Fatalf("decode zeta: %v", err)
		}
		if zeta.ID == 0 || zeta.Currency != "XOF" {
			t.Fatalf("create did not normalize: %+v", zeta)
		}
	}
	{
		code, body, _ := do(t, "POST", ts.URL+"/v1/hotels", map[string]any{
			"name": "Alpha", "city": "Thiès", "country": "Sénégal", "rating": 4.8,
			"price": 45000, "imageUrl": "alpha.jpg",
		})
		if code != http.StatusCreated {
			t.Fatalf("create alpha: status %d %s", code, body)
		}
		if err := json.Unmarshal(body, &alpha); err != nil {
			t.Fatalf("decode alpha: %v", err)
		}
	}

	// A create publishes a transient notification.
	if code, body, _ := do(t, "GET", ts.URL+"/v1/notification", nil); code != http.StatusOK {
		t.Fatalf("notification: status %d %s", code, body)
	}
	if code, _, _ := do(t, "DELETE", ts.URL+"/v1/notification", nil); code != http.StatusNoContent {
		t.Fatalf("clear notification failed")
	}
	if code, _, _ := do(t, "GET", ts.URL+"/v1/notification", nil); code != http.StatusNoContent {
		t.Fatalf("notification should be cleared")
	}

	// Filtering and sorting.
	var page struct {
		Total int            `json:"total"`
		Count int            `json:"count"`
		Items []domain.Hotel `json:"items"`
	}
	decodePage := func(url string) {
		code, body, _ := do(t, "GET", url, nil)
		if code != http.StatusOK {
			t.Fatalf("list %s: status %d", url, code)
		}
		if err := json.Unmarshal(body, &page); err != nil {
			t.Fatalf("decode page: %v", err)
		}
	}
	decodePage(ts.URL + "/v1/hotels?q=dakar")
	if page.Total != 2 || page.Count != 1 || page.Items[0].Name != "Zeta" {
		t.Fatalf("q=dakar: %+v", page)
	}
	decodePage(ts.URL + "/v1/hotels?min_rating=4")
	if page.Count != 1 || page.Items[0].Name != "Alpha" {
		t.Fatalf("min_rating=4: %+v", page)
	}
	decodePage(ts.URL + "/v1/hotels?sort=name_asc")
	if page.Count != 2 || page.Items[0].Name != "Alpha" || page.Items[1].Name != "Zeta" {
		t.Fatalf("sort=name_asc: %+v", page)
	}

	// Stats aggregate over the unfiltered list.
	var st domain.Stats
	if code, body, _ := do(t, "GET", ts.URL+"/v1/stats", nil); code != http.StatusOK {
		t.Fatalf("stats: status %d", code)
	} else if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.TotalHotels != 2 || st.MaxPrice != 45000 {
		t.Fatalf("stats: %+v", st)
	}

	// Detail GET with conditional revalidation.
	hotelURL := fmt.Sprintf("%s/v1/hotels/%d", ts.URL, zeta.ID)
	_, _, hdr := do(t, "GET", hotelURL, nil)
	etag := hdr.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag on detail GET")
	}
	req, _ := http.NewRequest("GET", hotelURL, nil)
	req.Header.Set("If-None-Match", etag)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional GET: status %d", res.StatusCode)
	}

	// Update, delete, and delete-again (silent no-op).
	if code, body, _ := do(t, "PUT", hotelURL, map[string]any{
		"name": "Zeta Palace", "city": "Dakar", "price": 22000, "imageUrl": "zeta.jpg",
	}); code != http.StatusOK {
		t.Fatalf("update: status %d %s", code, body)
	} else {
		var u domain.Hotel
		if err := json.Unmarshal(body, &u); err != nil {
			t.Fatalf("decode update: %v", err)
		}
		if u.Name != "Zeta Palace" || u.UpdatedAt == nil {
			t.Fatalf("update result: %+v", u)
		}
	}
	if code, _, _ := do(t, "PUT", ts.URL+"/v1/hotels/424242", map[string]any{"name": "Ghost"}); code != http.StatusNotFound {
		t.Fatalf("update of absent id: status %d", code)
	}
	if code, _, _ := do(t, "DELETE", hotelURL, nil); code != http.StatusNoContent {
		t.Fatalf("delete: status %d", code)
	}
	if code, _, _ := do(t, "DELETE", hotelURL, nil); code != http.StatusNoContent {
		t.Fatalf("repeat delete must stay a no-op: status %d", code)
	}
	if code, _, _ := do(t, "GET", hotelURL, nil); code != http.StatusNotFound {
		t.Fatalf("deleted hotel still served")
	}

	// Logout closes the gate again.
	if code, _, _ := do(t, "POST", ts.URL+"/v1/auth/logout", nil); code != http.StatusNoContent {
		t.Fatalf("logout: status %d", code)
	}
	if code, _, _ := do(t, "GET", ts.URL+"/v1/hotels", nil); code != http.StatusUnauthorized {
		t.Fatalf("list after logout: status %d", code)
	}
}

func TestHTTP_LoginThrottle(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Auth:       app.NewAuthService(ctx, store, app.BcryptHasher{Cost: 4}, app.AuthOptions{}),
		Inventory:  app.NewInventoryService(ctx, store),
		Notify:     app.NewNotifier(time.Minute),
		LoginLimit: rate.NewLimiter(rate.Limit(1), 1),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	creds := map[string]string{"email": "x@y.z", "password": "guess"}
	first, _, _ := do(t, "POST", ts.URL+"/v1/auth/login", creds)
	second, _, _ := do(t, "POST", ts.URL+"/v1/auth/login", creds)
	if first != http.StatusUnauthorized {
		t.Fatalf("first attempt: status %d", first)
	}
	if second != http.StatusTooManyRequests {
		t.Fatalf("burst attempt should be throttled, got %d", second)
	}
}
