package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"launchbay-gateway/internal/entitlement"
	"launchbay-gateway/internal/gate"
	"launchbay-gateway/internal/handler"
	"launchbay-gateway/internal/marketplace"
	"launchbay-gateway/internal/marketplace/client"
	"launchbay-gateway/internal/role"
	"launchbay-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory session.Store for tests.
type memStore struct {
	sessions map[string]session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]session.Session)}
}

func (m *memStore) Create(_ context.Context, s session.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memStore) Get(_ context.Context, sessionID string) (*session.Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) Update(_ context.Context, s session.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memStore) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type staticResolver struct {
	role role.Role
}

func (s staticResolver) ResolveRole(context.Context, string, string) (role.Role, error) {
	return s.role, nil
}

// harness wires a handler against a fake upstream the way app.setupHTTP
// does against the real one.
type harness struct {
	router   *gin.Engine
	store    *memStore
	upstream *httptest.Server
}

func newHarness(t *testing.T, upstream http.HandlerFunc) *harness {
	return newHarnessRole(t, role.User, upstream)
}

func newHarnessRole(t *testing.T, r role.Role, upstream http.HandlerFunc) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	store := newMemStore()
	market := client.New(srv.URL, time.Second)
	h := handler.NewHandler(market, nil, role.NewCache(staticResolver{role: r}))
	g := gate.New(store, role.NewCache(staticResolver{role: r}))

	router := gin.New()

	browse := router.Group("/api")
	browse.Use(g.Attach())
	browse.GET("/products/:id", h.GetProduct)
	browse.GET("/coupons", h.ValidCoupons)
	browse.GET("/coupons/apply", h.ApplyCoupon)

	api := router.Group("/api")
	api.Use(g.RequireAPI(entitlement.RequireAuthenticated))
	api.POST("/products", h.AddProduct)
	api.DELETE("/products/:id", h.DeleteProduct)
	api.PATCH("/products/upvote/:id", h.Upvote)
	api.PATCH("/products/report/:id", h.Report)

	return &harness{router: router, store: store, upstream: srv}
}

func (h *harness) signIn(t *testing.T, email string) *http.Cookie {
	t.Helper()
	sess := session.Session{
		SessionID: "sid-" + email,
		Email:     email,
		Token:     "tok-" + email,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, h.store.Create(context.Background(), sess))
	return &http.Cookie{Name: session.CookieName, Value: sess.SessionID}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func productJSON(p marketplace.Product) []byte {
	b, _ := json.Marshal(p)
	return b
}

func TestUpvote_PriorVoterRejectedWithoutForwarding(t *testing.T) {
	var patched bool
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patched = true
		}
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "carol@example.com",
			Voters:     []string{"alice@example.com"},
			Upvotes:    1,
		}))
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodPatch, "/api/products/upvote/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, patched, "advisory rejection must not reach upstream")
}

func TestUpvote_OwnerRejected(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "alice@example.com",
		}))
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodPatch, "/api/products/upvote/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpvote_SuccessReturnsUpstreamProduct(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			// upstream is the source of truth for the new count
			_, _ = w.Write(productJSON(marketplace.Product{
				ID:      "p1",
				Upvotes: 42,
				Voters:  []string{"bob@example.com", "alice@example.com"},
			}))
			return
		}
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "carol@example.com",
			Upvotes:    41,
			Voters:     []string{"bob@example.com"},
		}))
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodPatch, "/api/products/upvote/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	require.Equal(t, http.StatusOK, w.Code)

	var got marketplace.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 42, got.Upvotes)
	assert.Contains(t, got.Voters, "alice@example.com")
}

func TestUpvote_UpstreamConflictSurfaces(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusConflict)
			return
		}
		// advisory view says the vote is fine; upstream disagrees
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "carol@example.com",
		}))
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodPatch, "/api/products/upvote/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteProduct_OwnerDeletes(t *testing.T) {
	var deleted bool
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "alice@example.com",
		}))
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, deleted)
}

func TestDeleteProduct_NonOwnerForbidden(t *testing.T) {
	var deleted bool
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			return
		}
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "carol@example.com",
		}))
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, deleted, "ownership rejection must not reach upstream")
}

func TestDeleteProduct_AdminDeletesAnyProduct(t *testing.T) {
	var deleted bool
	h := newHarnessRole(t, role.Admin, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "carol@example.com",
		}))
	})
	cookie := h.signIn(t, "root@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/products/p1", nil)
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, deleted, "admin may delete products they do not own")
}

func TestGetProduct_AdvisoryFlags(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(productJSON(marketplace.Product{
			ID:         "p1",
			OwnerEmail: "carol@example.com",
		}))
	})

	// anonymous browsing: product visible, both actions off
	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	w := h.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CanVote   bool `json:"canVote"`
		CanReport bool `json:"canReport"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.CanVote)
	assert.False(t, body.CanReport)

	// signed in, not the owner, no prior vote: both on
	cookie := h.signIn(t, "alice@example.com")
	req = httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	req.AddCookie(cookie)
	w = h.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.CanVote)
	assert.True(t, body.CanReport)
}

func TestAddProduct_StampsOwnerAndPending(t *testing.T) {
	var received marketplace.Product
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(productJSON(received))
	})
	cookie := h.signIn(t, "alice@example.com")

	payload := `{"name":"LaunchPad","description":"A deployment assistant.","image":"https://cdn.example.com/p.png"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "alice@example.com", received.OwnerEmail)
	assert.Equal(t, marketplace.StatusPending, received.Status)
}

func TestAddProduct_InvalidInputNeverForwarded(t *testing.T) {
	var called bool
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	cookie := h.signIn(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := h.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestValidCoupons_ExpiredNeverServed(t *testing.T) {
	now := time.Now()
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]marketplace.Coupon{
			{Code: "fresh25", ExpiryDate: now.Add(24 * time.Hour)},
			{Code: "stale10", ExpiryDate: now.Add(-time.Hour)},
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
	w := h.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fresh25")
	assert.NotContains(t, w.Body.String(), "stale10")
}

func TestApplyCoupon(t *testing.T) {
	now := time.Now()
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]marketplace.Coupon{
			{Code: "save25", DiscountPercent: 25, ExpiryDate: now.Add(24 * time.Hour)},
			{Code: "old10", DiscountPercent: 10, ExpiryDate: now.Add(-time.Hour)},
		})
	})

	// valid code, case-insensitive
	req := httptest.NewRequest(http.MethodGet, "/api/coupons/apply?code=SAVE25", nil)
	w := h.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"discountPercent":25`)

	// expired and unknown codes answer identically
	for _, code := range []string{"old10", "nope"} {
		req = httptest.NewRequest(http.MethodGet, "/api/coupons/apply?code="+code, nil)
		w = h.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
		assert.Contains(t, w.Body.String(), "invalid or expired coupon")
	}
}

func TestUpstreamOutageAnswers502(t *testing.T) {
	h := newHarness(t, func(http.ResponseWriter, *http.Request) {})
	h.upstream.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	w := h.do(req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
