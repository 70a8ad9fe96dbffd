package controllers

import (
	"net/http"

	"github.com/lakeshoremuseum/museum-backend/api/middleware"
	"github.com/lakeshoremuseum/museum-backend/api/responses"
	"github.com/lakeshoremuseum/museum-backend/api/validators"
	checkoutsvc "github.com/lakeshoremuseum/museum-backend/internal/checkout"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
)

type checkoutRequest struct {
	Lines   []cartLineRequest          `json:"lines" validate:"dive"`
	Billing checkoutsvc.BillingDetails `json:"billing"`
}

type membershipCheckoutRequest struct {
	MembershipType string                     `json:"membership_type" validate:"required"`
	Renewal        bool                       `json:"renewal"`
	Billing        checkoutsvc.BillingDetails `json:"billing"`
}

// GiftShopCheckout submits a gift-shop only order.
func GiftShopCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return submitCheckout(svc, logg, enums.CheckoutModeGiftShop)
}

// CombinedCheckout submits an order mixing tickets and gift items.
func CombinedCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return submitCheckout(svc, logg, enums.CheckoutModeCombined)
}

func submitCheckout(svc checkoutsvc.Service, logg *logger.Logger, mode enums.CheckoutMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.SubmitInput{
			Mode:    mode,
			Lines:   toLineInputs(payload.Lines),
			Billing: payload.Billing,
		}
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			input.UserID = &userID
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCheckoutMode(ctx, string(mode))
		}

		receipt, err := svc.Submit(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptResponse(receipt))
	}
}

// MembershipCheckout purchases or renews a membership plan.
func MembershipCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload membershipCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membershipType, err := enums.ParseMembershipType(payload.MembershipType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid membership type"))
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to purchase a membership"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCheckoutMode(ctx, string(enums.CheckoutModeMembership))
		}

		receipt, err := svc.Submit(ctx, checkoutsvc.SubmitInput{
			Mode:           enums.CheckoutModeMembership,
			Billing:        payload.Billing,
			UserID:         &userID,
			MembershipType: membershipType,
			Renewal:        payload.Renewal,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReceiptResponse(receipt))
	}
}
