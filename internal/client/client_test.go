package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/auth"
	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/handlers"
	"github.com/Fashion-Store/Aradaa/internal/orders"
	"github.com/Fashion-Store/Aradaa/internal/session"
)

var _ session.Authenticator = (*Client)(nil)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, handlers.HandlerConfig{
		Products: catalog.Products(),
		Tokens:   auth.NewIssuer("test", time.Hour),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Env:      "test",
		Async:    func(task func()) { task() },
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestListAndGetProducts(t *testing.T) {
	c := New(newServer(t).URL)
	ctx := context.Background()

	list, err := c.ListProducts(ctx, catalog.Params{Category: "dresses", SortBy: catalog.SortPriceHigh})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if list.Total == 0 || list.Total != len(list.Products) {
		t.Fatalf("unexpected list %+v", list)
	}
	for i := 1; i < len(list.Products); i++ {
		if list.Products[i-1].Price < list.Products[i].Price {
			t.Fatal("expected descending prices")
		}
	}

	p, err := c.GetProduct(ctx, "2")
	if err != nil || p.ID != "2" {
		t.Fatalf("GetProduct: %+v %v", p, err)
	}

	_, err = c.GetProduct(ctx, "999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "Product not found" {
		t.Fatalf("expected APIError with body, got %#v", err)
	}
}

func TestLoginThroughSessionStore(t *testing.T) {
	c := New(newServer(t).URL)
	s := session.New(c)

	if !s.Login(context.Background(), "shopper@adaraa.com", "pw") {
		t.Fatal("expected login to succeed")
	}
	if u := s.User(); u == nil || u.Email != "shopper@adaraa.com" || s.Token() == "" {
		t.Fatalf("unexpected session %+v %q", u, s.Token())
	}

	if s.Register(context.Background(), "", "x@y.com", "pw") {
		t.Fatal("register without name should fail")
	}
	if s.User().Email != "shopper@adaraa.com" {
		t.Fatal("failed register must keep the previous session")
	}
}

func TestLogin_ValidationError(t *testing.T) {
	c := New(newServer(t).URL)
	_, _, err := c.Login(context.Background(), "", "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
	if apiErr.Fields["email"] != "required" {
		t.Fatalf("expected field errors, got %+v", apiErr.Fields)
	}
}

func TestPlaceOrderAndHistory(t *testing.T) {
	c := New(newServer(t).URL)
	ctx := context.Background()

	o := orders.Order{
		Items:    []orders.Item{{ProductID: "1", Name: "Classic Black Dress", Size: "M", Quantity: 1, Price: 12500}},
		Customer: orders.Customer{Name: "A", Email: "a@b.com"},
		Total:    12500,
	}
	conf, err := c.PlaceOrder(ctx, o, "key-1")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if !conf.Success || !strings.HasPrefix(conf.OrderID, "ORD") {
		t.Fatalf("unexpected confirmation %+v", conf)
	}

	history, err := c.Orders(ctx, conf.OrderID)
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	if len(history) == 0 || history[0].ID != conf.OrderID {
		t.Fatalf("latest order not first: %+v", history)
	}
}

func TestPlaceOrder_InProgressIsNotPlaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"success":false,"orderId":"ORD1","message":"request already in progress"}`)
	}))
	t.Cleanup(srv.Close)

	conf, err := New(srv.URL).PlaceOrder(context.Background(), orders.Order{}, "key-1")
	if !errors.Is(err, ErrOrderNotPlaced) {
		t.Fatalf("expected ErrOrderNotPlaced, got %v", err)
	}
	if !strings.Contains(err.Error(), "in progress") || conf.OrderID != "ORD1" {
		t.Fatalf("unexpected reply %+v %v", conf, err)
	}
}

func TestSendContactAndHealth(t *testing.T) {
	c := New(newServer(t).URL)
	ctx := context.Background()

	msg, err := c.SendContact(ctx, ContactMessage{Message: "hello"})
	if err != nil || msg == "" {
		t.Fatalf("SendContact: %q %v", msg, err)
	}

	h, err := c.Health(ctx)
	if err != nil || h.Environment != "test" {
		t.Fatalf("Health: %+v %v", h, err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).ListProducts(context.Background(), catalog.Params{})
	if err == nil {
		t.Fatal("expected error against a closed server")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failures are not APIErrors")
	}
}
