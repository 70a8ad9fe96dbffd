package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/internal/pricing"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
	"github.com/lakeshoremuseum/museum-backend/pkg/logger"
	"github.com/lakeshoremuseum/museum-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type membershipStore interface {
	ResolveForUser(ctx context.Context, userID uuid.UUID, today time.Time) (membership.Resolved, error)
	FindPlanByType(ctx context.Context, membershipType enums.MembershipType) (*models.MembershipPlan, error)
	CreateRecordTx(ctx context.Context, tx *gorm.DB, record *models.MembershipRecord) error
}

type giftInventory interface {
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
}

type receiptWriter interface {
	CreateTx(ctx context.Context, tx *gorm.DB, receipt *models.Receipt) error
}

// Service runs cart quotes and checkout submissions.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error)
	Submit(ctx context.Context, input SubmitInput) (*models.Receipt, error)
}

type service struct {
	builder     cart.Builder
	memberships membershipStore
	inventory   giftInventory
	receipts    receiptWriter
	tx          txRunner
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
	clock       func() time.Time
}

// QuoteInput prices a cart without committing anything.
type QuoteInput struct {
	Lines  []cart.LineInput
	UserID *uuid.UUID
}

// QuoteResult carries the materialized lines and the raw totals. Formatting
// for display happens at the API boundary.
type QuoteResult struct {
	Lines      []cart.Line
	Totals     pricing.Totals
	Membership membership.Resolved
}

// SubmitInput is one checkout attempt. UserID is nil for anonymous buyers.
type SubmitInput struct {
	Mode           enums.CheckoutMode
	Lines          []cart.LineInput
	Billing        BillingDetails
	UserID         *uuid.UUID
	MembershipType enums.MembershipType
	Renewal        bool
}

// NewService wires a checkout service with all collaborators.
func NewService(
	builder cart.Builder,
	memberships membershipStore,
	inventory giftInventory,
	receipts receiptWriter,
	tx txRunner,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if builder == nil {
		return nil, fmt.Errorf("cart builder required")
	}
	if memberships == nil {
		return nil, fmt.Errorf("membership store required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("gift inventory required")
	}
	if receipts == nil {
		return nil, fmt.Errorf("receipt writer required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		builder:     builder,
		memberships: memberships,
		inventory:   inventory,
		receipts:    receipts,
		tx:          tx,
		metrics:     checkoutMetrics,
		logg:        logg,
		clock:       time.Now,
	}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	built, err := s.builder.Build(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveMembership(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	lines := built.Snapshot()
	totals, err := pricing.Compute(lines, resolved)
	if err != nil {
		return nil, err
	}

	return &QuoteResult{Lines: lines, Totals: totals, Membership: resolved}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Receipt, error) {
	started := s.clock()
	receipt, err := s.submit(ctx, input)
	s.observe(string(input.Mode), started, err)
	return receipt, err
}

func (s *service) submit(ctx context.Context, input SubmitInput) (*models.Receipt, error) {
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown checkout mode %q", input.Mode))
	}
	now := s.clock()

	built, err := s.builder.Build(ctx, input.Lines)
	if err != nil {
		return nil, err
	}
	lines := built.Snapshot()
	if err := checkModeLines(input.Mode, lines); err != nil {
		return nil, err
	}

	// Eligibility is resolved before pricing so the discount and the gate
	// see the same state.
	resolved, err := s.resolveMembership(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var plan *models.MembershipPlan
	if input.Mode == enums.CheckoutModeMembership {
		plan, err = s.loadPlan(ctx, input)
		if err != nil {
			return nil, err
		}
	}

	gate := GateInput{
		Lines:         lines,
		Membership:    resolved,
		Mode:          input.Mode,
		Authenticated: input.UserID != nil,
		Renewal:       input.Renewal,
		Billing:       input.Billing,
		Now:           now,
	}
	if err := Validate(gate); err != nil {
		return nil, err
	}

	totals, priceLines, err := s.price(lines, resolved, plan)
	if err != nil {
		return nil, err
	}

	receipt := buildReceipt(input, priceLines, totals)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for _, line := range lines {
			if line.Kind != enums.LineKindGiftItem {
				continue
			}
			productID, err := uuid.Parse(line.ItemID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse gift product id")
			}
			if err := s.inventory.DecrementStock(ctx, tx, productID, line.Quantity); err != nil {
				return err
			}
		}

		if plan != nil {
			record := newMembershipRecord(*input.UserID, plan, now)
			if err := s.memberships.CreateRecordTx(ctx, tx, record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership record")
			}
		}

		return s.receipts.CreateTx(ctx, tx, receipt)
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"mode":        input.Mode,
		"receipt_id":  receipt.ID,
		"total_cents": receipt.TotalCents,
	})
	s.logg.Info(logCtx, "checkout.accepted")

	return receipt, nil
}

func checkModeLines(mode enums.CheckoutMode, lines []cart.Line) error {
	switch mode {
	case enums.CheckoutModeGiftShop:
		for _, line := range lines {
			if line.Kind == enums.LineKindTicket {
				return pkgerrors.New(pkgerrors.CodeValidation, "gift shop checkout cannot include tickets")
			}
		}
	case enums.CheckoutModeMembership:
		if len(lines) > 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "membership checkout does not take cart lines")
		}
	}
	return nil
}

func (s *service) resolveMembership(ctx context.Context, userID *uuid.UUID) (membership.Resolved, error) {
	if userID == nil {
		return membership.Resolved{}, nil
	}
	resolved, err := s.memberships.ResolveForUser(ctx, *userID, s.clock())
	if err != nil {
		return membership.Resolved{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve membership")
	}
	return resolved, nil
}

func (s *service) loadPlan(ctx context.Context, input SubmitInput) (*models.MembershipPlan, error) {
	if input.UserID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to purchase a membership")
	}
	if !input.MembershipType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown membership type %q", input.MembershipType))
	}
	plan, err := s.memberships.FindPlanByType(ctx, input.MembershipType)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership plan")
	}
	return plan, nil
}

// price computes order totals. A membership plan is priced as its own line
// with no membership discount: the discount a plan grants never applies to
// the plan's own price.
func (s *service) price(lines []cart.Line, resolved membership.Resolved, plan *models.MembershipPlan) (pricing.Totals, []cart.Line, error) {
	if plan == nil {
		totals, err := pricing.Compute(lines, resolved)
		return totals, lines, err
	}

	planLine := cart.Line{
		ItemID:    plan.ID.String(),
		Kind:      enums.LineKindGiftItem,
		Name:      plan.Name,
		UnitPrice: decimalCents(plan.PriceCents),
		Quantity:  1,
	}
	priced := append(append([]cart.Line{}, lines...), planLine)
	totals, err := pricing.Compute(priced, membership.Resolved{})
	return totals, priced, err
}

func (s *service) observe(mode string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveDuration(mode, s.clock().Sub(started))
	if err != nil {
		s.metrics.IncDenied(mode, string(pkgerrors.As(err).Code()))
		return
	}
	s.metrics.IncAccepted(mode)
}

func buildReceipt(input SubmitInput, lines []cart.Line, totals pricing.Totals) *models.Receipt {
	receipt := &models.Receipt{
		ID:                          uuid.New(),
		UserID:                      input.UserID,
		Mode:                        input.Mode,
		SubtotalBeforeDiscountCents: pricing.ToCents(totals.SubtotalBeforeDiscount),
		DiscountCents:               pricing.ToCents(totals.DiscountAmount),
		SubtotalCents:               pricing.ToCents(totals.Subtotal),
		TaxCents:                    pricing.ToCents(totals.Tax),
		TotalCents:                  pricing.ToCents(totals.Total),
	}

	for _, line := range lines {
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			ItemID:         line.ItemID,
			Kind:           line.Kind,
			Name:           line.Name,
			UnitPrice:      line.UnitPrice.StringFixed(2),
			Quantity:       line.Quantity,
			VisitDate:      line.VisitDate,
			TicketTypeName: line.TicketTypeName,
		})
	}

	if date, ok := sharedVisitDate(lines); ok {
		receipt.VisitDate = &date
	}
	return receipt
}

func newMembershipRecord(userID uuid.UUID, plan *models.MembershipPlan, now time.Time) *models.MembershipRecord {
	expires := now.AddDate(0, plan.DurationMonths, 0)
	return &models.MembershipRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		MembershipType:     plan.MembershipType,
		IsActive:           true,
		DiscountPercentage: plan.DiscountPercentage,
		ExpirationDate:     &expires,
		UnlimitedVisits:    plan.UnlimitedVisits,
	}
}

func decimalCents(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}
