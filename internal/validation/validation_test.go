package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Fashion-Store/Aradaa/internal/orders"
)

func TestLoginRequest(t *testing.T) {
	v := New()

	if err := v.Struct(LoginRequest{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := v.Struct(LoginRequest{Email: "a@b.com"})
	if err == nil {
		t.Fatal("expected error for missing password")
	}
	fields := FieldErrors(err)
	if fields["password"] != "required" {
		t.Fatalf("expected password=required, got %v", fields)
	}
}

func TestRegisterRequest_MissingFields(t *testing.T) {
	err := New().Struct(RegisterRequest{})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fields := FieldErrors(err)
	for _, f := range []string{"name", "email", "password"} {
		if fields[f] != "required" {
			t.Fatalf("expected %s=required, got %v", f, fields)
		}
	}
}

func TestCheckoutForm(t *testing.T) {
	v := New()

	ok := CheckoutForm{Name: "Ayesha", Email: "a@b.com", Street: "12 Mall Rd", City: "Lahore"}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	bad := ok
	bad.Email = "not-an-email"
	bad.Phone = "12"
	fields := FieldErrors(v.Struct(bad))
	if fields["email"] != "email" || fields["phone"] != "min" {
		t.Fatalf("unexpected field errors %v", fields)
	}
}

func TestOrder_TotalMustMatchItems(t *testing.T) {
	v := New()

	o := orders.Order{
		Items: []orders.Item{
			{ProductID: "1", Quantity: 2, Price: 12500},
			{ProductID: "3", Quantity: 1, Price: 8500},
		},
		Total: 33500,
	}
	if err := v.Struct(o); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	o.Total = 30000
	if err := v.Struct(o); err == nil {
		t.Fatal("expected total mismatch error")
	}
}

func TestOrder_Empty(t *testing.T) {
	if err := New().Struct(orders.Order{}); err == nil {
		t.Fatal("expected error for order without items")
	}
}

func TestBindAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := New()

	cases := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"valid", `{"email":"a@b.com","password":"pw"}`, http.StatusOK, ""},
		{"malformed", `{"email":`, http.StatusBadRequest, "invalid_request_body"},
		{"empty fields", `{"email":"","password":""}`, http.StatusBadRequest, "validation_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req LoginRequest
			err := BindAndValidate(c, &req, v)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if w.Code != tc.wantCode {
				t.Fatalf("status %d, want %d", w.Code, tc.wantCode)
			}
			if !strings.Contains(w.Body.String(), tc.wantErr) || !strings.Contains(w.Body.String(), `"success":false`) {
				t.Fatalf("unexpected body %s", w.Body.String())
			}
		})
	}
}
