package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lakeshoremuseum/museum-backend/api/middleware"
	checkoutsvc "github.com/lakeshoremuseum/museum-backend/internal/checkout"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
)

type stubCheckoutService struct {
	receipt  *models.Receipt
	quote    *checkoutsvc.QuoteResult
	err      error
	quoteErr error

	gotInput checkoutsvc.SubmitInput
	gotQuote checkoutsvc.QuoteInput
}

func (s *stubCheckoutService) Quote(ctx context.Context, input checkoutsvc.QuoteInput) (*checkoutsvc.QuoteResult, error) {
	s.gotQuote = input
	return s.quote, s.quoteErr
}

func (s *stubCheckoutService) Submit(ctx context.Context, input checkoutsvc.SubmitInput) (*models.Receipt, error) {
	s.gotInput = input
	return s.receipt, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

const giftCheckoutBody = `{
  "lines": [{"gift_product_id": "6f1b0a48-9c07-4f2e-8b1a-0f2640b7c1de", "quantity": 2}],
  "billing": {
    "first_name": "Dana",
    "last_name": "Whitfield",
    "email": "dana@example.com",
    "phone_number": "3125550142",
    "card_number": "4242424242424242",
    "cvv": "123",
    "zip_code": "60601",
    "card_expiry": "12/2028"
  }
}`

func TestGiftShopCheckoutSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{receipt: &models.Receipt{
		ID:         uuid.New(),
		Mode:       enums.CheckoutModeGiftShop,
		TotalCents: 2165,
	}}
	handler := GiftShopCheckout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/gift-shop-checkout", strings.NewReader(giftCheckoutBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.Mode != enums.CheckoutModeGiftShop {
		t.Fatalf("mode = %s", svc.gotInput.Mode)
	}
	if svc.gotInput.UserID != nil {
		t.Fatal("anonymous request must not carry a user id")
	}
	if len(svc.gotInput.Lines) != 1 || svc.gotInput.Lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v", svc.gotInput.Lines)
	}

	var envelope struct {
		Data struct {
			Mode   string `json:"mode"`
			Totals struct {
				Total      string `json:"total"`
				TotalCents int    `json:"total_cents"`
			} `json:"totals"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Mode != "gift_shop" {
		t.Fatalf("mode = %s", envelope.Data.Mode)
	}
	if envelope.Data.Totals.Total != "$21.65" || envelope.Data.Totals.TotalCents != 2165 {
		t.Fatalf("totals = %+v", envelope.Data.Totals)
	}
}

func TestCombinedCheckoutForwardsUser(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{receipt: &models.Receipt{ID: uuid.New(), Mode: enums.CheckoutModeCombined}}
	handler := CombinedCheckout(svc, testLogger())

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/combined-checkout", strings.NewReader(giftCheckoutBody))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.UserID == nil || *svc.gotInput.UserID != userID {
		t.Fatalf("user id = %v", svc.gotInput.UserID)
	}
}

func TestCheckoutDenialMapsToStatusAndCode(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeSalesClosedForToday, "same-day ticket sales close at 5 PM")}
	handler := CombinedCheckout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/combined-checkout", strings.NewReader(giftCheckoutBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeSalesClosedForToday) {
		t.Fatalf("code = %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "same-day ticket sales close at 5 PM" {
		t.Fatalf("message = %s", envelope.Error.Message)
	}
}

func TestCheckoutRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{}
	handler := GiftShopCheckout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/gift-shop-checkout", strings.NewReader(`{"lines": [{"quantity": 0`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMembershipCheckoutRequiresAuth(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{}
	handler := MembershipCheckout(svc, testLogger())

	body := `{"membership_type": "individual", "billing": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/membership-checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestMembershipCheckoutSubmitsPlan(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{receipt: &models.Receipt{ID: uuid.New(), Mode: enums.CheckoutModeMembership}}
	handler := MembershipCheckout(svc, testLogger())

	userID := uuid.New()
	body := `{"membership_type": "family", "renewal": true, "billing": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/membership-checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.MembershipType != enums.MembershipTypeFamily {
		t.Fatalf("membership type = %s", svc.gotInput.MembershipType)
	}
	if !svc.gotInput.Renewal {
		t.Fatal("renewal flag lost")
	}
}

func TestMembershipCheckoutUnknownTier(t *testing.T) {
	t.Parallel()

	svc := &stubCheckoutService{}
	handler := MembershipCheckout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/membership-checkout", strings.NewReader(`{"membership_type": "platinum", "billing": {}}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
