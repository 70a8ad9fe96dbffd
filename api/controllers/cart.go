package controllers

import (
	"net/http"

	"github.com/lakeshoremuseum/museum-backend/api/middleware"
	"github.com/lakeshoremuseum/museum-backend/api/responses"
	"github.com/lakeshoremuseum/museum-backend/api/validators"
	checkoutsvc "github.com/lakeshoremuseum/museum-backend/internal/checkout"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
)

type quoteRequest struct {
	Lines []cartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type quoteResponse struct {
	Lines      []lineResponse `json:"lines"`
	Totals     totalsResponse `json:"totals"`
	Membership struct {
		Active             bool `json:"active"`
		DiscountPercentage int  `json:"discount_percentage"`
		TicketQuota        int  `json:"ticket_quota"`
	} `json:"membership"`
}

// QuoteCart prices a cart for display without committing anything.
func QuoteCart(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.QuoteInput{Lines: toLineInputs(payload.Lines)}
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			input.UserID = &userID
		}

		quote, err := svc.Quote(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := quoteResponse{
			Lines:  newLineResponses(quote.Lines),
			Totals: newTotalsResponse(quote.Totals),
		}
		resp.Membership.Active = quote.Membership.Active
		resp.Membership.DiscountPercentage = quote.Membership.DiscountPercentage
		resp.Membership.TicketQuota = quote.Membership.TicketQuota

		responses.WriteSuccess(w, resp)
	}
}
