package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amazona/e2e/internal/api"
	"github.com/amazona/e2e/internal/config"
)

func TestChain_SignupLoginGetUser(t *testing.T) {
	for _, envelope := range []string{config.EnvelopeFlat, config.EnvelopeNested, config.EnvelopeData} {
		t.Run(envelope, func(t *testing.T) {
			h := newHarness(t, newStub(t, envelope).URL)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			// GIVEN a logged in fresh user
			session, err := h.SignupAndLogin(ctx)
			require.NoError(t, err)

			// WHEN the user is fetched by id and as "me"
			resp, byID, err := h.GetUser(ctx, session, session.UserID)
			require.NoError(t, err)
			require.True(t, resp.OK(), api.StatusText(resp.Status))
			_, me, err := h.GetUser(ctx, session, "")
			require.NoError(t, err)

			// THEN both return the signed up email
			assert.Equal(t, session.Credentials.Email, api.StringField(byID, "email"))
			assert.Equal(t, session.UserID, api.ExtractID(me))
		})
	}
}

func TestChain_ProductsCartOrder(t *testing.T) {
	h := newHarness(t, newStub(t, config.EnvelopeNested).URL)
	ctx := context.Background()
	fixtures := config.Default().Fixtures

	session, err := h.SignupAndLogin(ctx)
	require.NoError(t, err)

	// list then get the first product
	resp, products, err := h.ListProducts(ctx, session)
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.NotEmpty(t, products)

	id, err := h.FirstProductID(ctx, session)
	require.NoError(t, err)
	resp, product, err := h.GetProduct(ctx, session, id)
	require.NoError(t, err)
	require.True(t, resp.OK())
	assert.Equal(t, id, api.ExtractID(product))

	// add to cart
	resp, err = h.AddToCart(ctx, session, fixtures.Products.InStockID, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)

	// order with a valid card, then with an expired one
	resp, order, err := h.CreateOrder(ctx, session, api.OrderRequest{
		Items:   []api.CartItem{{ProductID: fixtures.Products.InStockID, Qty: 1}},
		Address: fixtures.Checkout.ValidAddress,
		Payment: fixtures.Checkout.ValidCard,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.NotEmpty(t, api.ExtractID(order))
	assert.Equal(t, "paid", api.StringField(order, "status"))

	resp, _, err = h.CreateOrder(ctx, session, api.OrderRequest{
		Items:   []api.CartItem{{ProductID: fixtures.Products.InStockID, Qty: 1}},
		Address: fixtures.Checkout.ValidAddress,
		Payment: fixtures.Checkout.InvalidCard,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusPaymentRequired, resp.Status)
}

func TestCreateOrder_DeclinedCardStoresOneOrder(t *testing.T) {
	h := newHarness(t, newStub(t, config.EnvelopeNested).URL)
	ctx := context.Background()
	fixtures := config.Default().Fixtures

	// GIVEN a fresh user with no orders
	session, err := h.SignupAndLogin(ctx)
	require.NoError(t, err)

	// WHEN an order is paid with a declined card
	resp, _, err := h.CreateOrder(ctx, session, api.OrderRequest{
		Items:   []api.CartItem{{ProductID: fixtures.Products.InStockID, Qty: 1}},
		Address: fixtures.Checkout.ValidAddress,
		Payment: fixtures.Checkout.InvalidCard,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusPaymentRequired, resp.Status)

	// THEN the checkout endpoint was not tried and one order is on record
	resp, orders, err := h.MyOrders(ctx, session)
	require.NoError(t, err)
	require.True(t, resp.OK(), api.StatusText(resp.Status))
	assert.Len(t, orders, 1)
}

func TestCreateOrder_FallbackStatuses(t *testing.T) {
	tests := []struct {
		name         string
		ordersStatus int
		wantStatus   int
		wantFallback bool
	}{
		{name: "missing endpoint", ordersStatus: http.StatusNotFound, wantStatus: http.StatusCreated, wantFallback: true},
		{name: "wrong method", ordersStatus: http.StatusMethodNotAllowed, wantStatus: http.StatusCreated, wantFallback: true},
		{name: "declined card", ordersStatus: http.StatusPaymentRequired, wantStatus: http.StatusPaymentRequired},
		{name: "bad request", ordersStatus: http.StatusBadRequest, wantStatus: http.StatusBadRequest},
		{name: "unauthorized", ordersStatus: http.StatusUnauthorized, wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checkoutCalls int
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/api/orders":
					w.WriteHeader(tt.ordersStatus)
					w.Write([]byte(`{"message":"refused"}`))
				case "/api/checkout":
					checkoutCalls++
					w.WriteHeader(http.StatusCreated)
					w.Write([]byte(`{"order":{"id":"o-1"}}`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer srv.Close()

			log := zaptest.NewLogger(t)
			h := api.NewHarness(api.NewClient(srv.URL, time.Second, log), config.Default().Fixtures, log)

			resp, _, err := h.CreateOrder(context.Background(), api.Session{Token: "t"}, api.OrderRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantFallback {
				assert.Equal(t, 1, checkoutCalls)
			} else {
				assert.Zero(t, checkoutCalls)
			}
		})
	}
}

func TestCreateOrder_FallsBackToCheckout(t *testing.T) {
	// GIVEN an API without an orders endpoint
	var checkoutBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/checkout":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&checkoutBody))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"order":{"id":"o-9"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	h := api.NewHarness(api.NewClient(srv.URL, time.Second, nil), config.Default().Fixtures, zap.New(core))

	// WHEN an order is created
	resp, order, err := h.CreateOrder(context.Background(), api.Session{Token: "t"}, api.OrderRequest{
		Items: []api.CartItem{{ProductID: "p1", Qty: 2}},
	})

	// THEN the checkout endpoint took it and the fallback was logged
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "o-9", api.ExtractID(order))
	assert.Equal(t, 1, logs.FilterMessage("orders endpoint missing, trying checkout").Len())
	assert.Equal(t, "p1", checkoutBody["items"].([]interface{})[0].(map[string]interface{})["productId"])
}

func TestHarness_MalformedBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/signup":
			w.Write([]byte(`<html>oops</html>`))
		case "/api/users/login":
			w.Write([]byte(`{"token": 12, "user": "nope"}`))
		case "/api/products":
			w.Write([]byte(`{"products": {"not": "a list"}}`))
		default:
			w.Write([]byte(`null`))
		}
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)
	ctx := context.Background()

	// Extraction absorbs malformed shapes into empty results
	su, err := h.Signup(ctx, h.NewUser())
	require.NoError(t, err)
	assert.Nil(t, su.Response.JSON)
	assert.Empty(t, su.UserID)
	assert.Empty(t, su.Token)

	li, err := h.Login(ctx, "a@b.c", "x")
	require.NoError(t, err)
	assert.Equal(t, "12", li.Token)
	assert.Empty(t, li.UserID)

	_, products, err := h.ListProducts(ctx, api.Session{})
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = h.FirstProductID(ctx, api.Session{})
	assert.Error(t, err)

	_, user, err := h.GetUser(ctx, api.Session{}, "u1")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestHarness_UnreachableBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	h := api.NewHarness(api.NewClient(url, time.Second, zaptest.NewLogger(t)), config.Default().Fixtures, nil)

	_, err := h.SignupAndLogin(context.Background())
	assert.Error(t, err)

	_, _, err = h.ListProducts(context.Background(), api.Session{})
	assert.Error(t, err)
}

func TestClient_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, 5*time.Second, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, "/slow", nil, nil)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
