package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/api/middleware"
	"github.com/lakeshoremuseum/museum-backend/api/responses"
	"github.com/lakeshoremuseum/museum-backend/internal/pricing"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
)

type receiptFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error)
}

type receiptLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error)
}

type receiptResponse struct {
	ID        uuid.UUID            `json:"id"`
	Mode      string               `json:"mode"`
	Totals    totalsResponse       `json:"totals"`
	VisitDate *string              `json:"visit_date,omitempty"`
	Lines     []models.ReceiptLine `json:"lines"`
	CreatedAt time.Time            `json:"created_at"`
}

// GetReceipt returns one order confirmation. Receipts tied to an account are
// only visible to that account; anonymous receipts are visible by id.
func GetReceipt(repo receiptFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "receiptID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid receipt id"))
			return
		}

		receipt, err := repo.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt"))
			return
		}

		if receipt.UserID != nil {
			authed, ok := middleware.UserIDFromContext(r.Context())
			if !ok || authed != *receipt.UserID {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found"))
				return
			}
		}

		responses.WriteSuccess(w, newReceiptResponse(receipt))
	}
}

// ListReceipts returns the authenticated visitor's receipts, newest first.
// Anonymous receipts are never attached to an account, so they do not appear
// here.
func ListReceipts(repo receiptLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "receipt service unavailable"))
			return
		}

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		rows, err := repo.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list receipts"))
			return
		}

		out := make([]receiptResponse, 0, len(rows))
		for i := range rows {
			out = append(out, newReceiptResponse(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

func newReceiptResponse(receipt *models.Receipt) receiptResponse {
	if receipt == nil {
		return receiptResponse{}
	}
	return receiptResponse{
		ID:   receipt.ID,
		Mode: string(receipt.Mode),
		Totals: totalsResponse{
			SubtotalBeforeDiscount: formatCents(receipt.SubtotalBeforeDiscountCents),
			Discount:               formatCents(receipt.DiscountCents),
			Subtotal:               formatCents(receipt.SubtotalCents),
			Tax:                    formatCents(receipt.TaxCents),
			Total:                  formatCents(receipt.TotalCents),
			TotalCents:             receipt.TotalCents,
		},
		VisitDate: receipt.VisitDate,
		Lines:     receipt.Lines,
		CreatedAt: receipt.CreatedAt,
	}
}

func formatCents(cents int) string {
	return pricing.FormatUSD(decimal.New(int64(cents), -2))
}
