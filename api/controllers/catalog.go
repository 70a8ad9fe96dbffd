package controllers

import (
	"context"
	"net/http"

	"github.com/lakeshoremuseum/museum-backend/api/responses"
	"github.com/lakeshoremuseum/museum-backend/internal/giftshop"
	"github.com/lakeshoremuseum/museum-backend/internal/tickets"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
)

type ticketTypeLister interface {
	ListActive(ctx context.Context) ([]models.TicketType, error)
}

type giftProductLister interface {
	ListActive(ctx context.Context) ([]models.GiftProduct, error)
}

// ListTicketTypes returns the ticket types on sale.
func ListTicketTypes(repo ticketTypeLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket catalog unavailable"))
			return
		}

		rows, err := repo.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ticket types"))
			return
		}

		responses.WriteSuccess(w, tickets.ToDTOs(rows))
	}
}

// ListGiftProducts returns the gift-shop products for sale.
func ListGiftProducts(repo giftProductLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gift shop catalog unavailable"))
			return
		}

		rows, err := repo.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list gift products"))
			return
		}

		responses.WriteSuccess(w, giftshop.ToDTOs(rows))
	}
}
