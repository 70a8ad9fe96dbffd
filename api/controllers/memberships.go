package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/api/middleware"
	"github.com/lakeshoremuseum/museum-backend/api/responses"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/internal/pricing"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
)

type membershipPlanResponse struct {
	ID                 uuid.UUID `json:"id"`
	MembershipType     string    `json:"membership_type"`
	Name               string    `json:"name"`
	PriceCents         int       `json:"price_cents"`
	Price              string    `json:"price"`
	DurationMonths     int       `json:"duration_months"`
	DiscountPercentage int       `json:"discount_percentage"`
	UnlimitedVisits    bool      `json:"unlimited_visits"`
	TicketQuota        int       `json:"ticket_quota"`
	Description        string    `json:"description"`
}

type membershipLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.MembershipRecord, error)
}

// GetUserMemberships returns a user's membership history, newest first. A
// user with no history gets an empty list. Visitors can only read their own.
func GetUserMemberships(repo membershipLister, logg *logger.Logger, now nowFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		requested, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid user id"))
			return
		}

		authed, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		if authed != requested {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot read another visitor's membership"))
			return
		}

		records, err := repo.ListForUser(r.Context(), requested)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load memberships"))
			return
		}

		responses.WriteSuccess(w, membership.ToDTOs(records, now()))
	}
}

// ListMembershipPlans returns the purchasable plans with their policy text.
func ListMembershipPlans(repo *membership.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		plans, err := repo.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list membership plans"))
			return
		}

		out := make([]membershipPlanResponse, 0, len(plans))
		for _, plan := range plans {
			out = append(out, newPlanResponse(plan))
		}
		responses.WriteSuccess(w, out)
	}
}

func newPlanResponse(plan models.MembershipPlan) membershipPlanResponse {
	return membershipPlanResponse{
		ID:                 plan.ID,
		MembershipType:     string(plan.MembershipType),
		Name:               plan.Name,
		PriceCents:         plan.PriceCents,
		Price:              pricing.FormatUSD(decimal.New(int64(plan.PriceCents), -2)),
		DurationMonths:     plan.DurationMonths,
		DiscountPercentage: plan.DiscountPercentage,
		UnlimitedVisits:    plan.UnlimitedVisits,
		TicketQuota:        membership.QuotaFor(string(plan.MembershipType)),
		Description:        membership.Describe(string(plan.MembershipType)),
	}
}
