package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mattress-shop/internal/config"
	"mattress-shop/internal/model"
	"mattress-shop/internal/notify"
	"mattress-shop/internal/promo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderStore is the order persistence used by the reconciler.
type OrderStore interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error)
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)
	MarkPaymentFailed(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)
}

// Reconciler applies gateway payment notifications to stored orders.
type Reconciler struct {
	cfg    config.WayForPayConfig
	orders OrderStore
	promos promo.Validator
	sender notify.Sender
	now    func() time.Time
	logger zerolog.Logger
}

// NewReconciler creates a new payment notification reconciler.
func NewReconciler(cfg config.WayForPayConfig, orders OrderStore, promos promo.Validator, sender notify.Sender, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		cfg:    cfg,
		orders: orders,
		promos: promos,
		sender: sender,
		now:    time.Now,
		logger: logger.With().Str("component", "payment-reconciler").Logger(),
	}
}

// HandleWebhook authenticates a notification body and reconciles it.
// Only a malformed body or a bad signature produce an error, and neither
// touches stored state. Every authenticated notification is acknowledged,
// including ones whose processing failed; those failures are logged.
func (r *Reconciler) HandleWebhook(ctx context.Context, body []byte) (*Acknowledgement, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		r.logger.Warn().Err(err).Msg("failed to decode payment notification")
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotification, err)
	}

	if n.OrderReference == "" || n.MerchantSignature == "" {
		r.logger.Warn().Msg("payment notification missing order reference or signature")
		return nil, fmt.Errorf("%w: orderReference and merchantSignature are required", ErrMalformedNotification)
	}

	if !Verify(r.cfg.SecretKey, n.MerchantSignature, n.SignatureFields()...) {
		r.logger.Warn().
			Str("order_reference", n.OrderReference).
			Str("transaction_status", n.TransactionStatus).
			Msg("payment notification signature mismatch")
		return nil, ErrInvalidSignature
	}

	if err := r.safeReconcile(ctx, &n); err != nil {
		r.logger.Error().
			Err(err).
			Str("order_reference", n.OrderReference).
			Str("transaction_status", n.TransactionStatus).
			Msg("payment reconciliation failed, acknowledging anyway")
	}

	return r.acknowledge(n.OrderReference), nil
}

func (r *Reconciler) safeReconcile(ctx context.Context, n *Notification) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during reconciliation: %v", p)
		}
	}()
	return r.reconcile(ctx, n)
}

func (r *Reconciler) reconcile(ctx context.Context, n *Notification) error {
	logger := r.logger.With().
		Str("order_reference", n.OrderReference).
		Str("transaction_status", n.TransactionStatus).
		Logger()

	order, items, err := r.orders.GetByOrderNumber(ctx, n.OrderReference)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		logger.Warn().Msg("payment notification for unknown order")
		return nil
	}

	if order.TransactionID != nil && *order.TransactionID != "" && order.PaymentStatus == model.PaymentStatusPaid {
		logger.Info().Msg("duplicate payment notification for paid order")
		return nil
	}

	switch n.TransactionStatus {
	case StatusApproved:
		return r.approve(ctx, n, order, items, logger)

	case StatusDeclined, StatusExpired:
		updated, err := r.orders.MarkPaymentFailed(ctx, order.ID, n.TransactionID())
		if err != nil {
			return fmt.Errorf("failed to mark payment failed: %w", err)
		}
		logger.Info().
			Bool("updated", updated).
			Str("reason", n.Reason).
			Str("reason_code", n.ReasonCode.String()).
			Msg("payment failed")
		return nil

	default:
		logger.Info().Msg("payment notification status ignored")
		return nil
	}
}

func (r *Reconciler) approve(ctx context.Context, n *Notification, order *model.Order, items []model.OrderItem, logger zerolog.Logger) error {
	expected := model.MajorUnits(order.Total)

	amount, err := decimal.NewFromString(n.Amount.String())
	if err != nil || !amount.Equal(expected) || !strings.EqualFold(n.Currency, r.cfg.Currency) {
		logger.Warn().
			Str("amount", n.Amount.String()).
			Str("expected_amount", expected.String()).
			Str("currency", n.Currency).
			Str("expected_currency", r.cfg.Currency).
			Msg("payment amount or currency mismatch, order left unpaid")
		return nil
	}

	flipped, err := r.orders.MarkPaid(ctx, order.ID, n.TransactionID())
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if !flipped {
		logger.Info().Msg("order already paid by a concurrent notification")
		return nil
	}

	logger.Info().
		Str("order_id", order.ID.String()).
		Str("transaction_id", n.TransactionID()).
		Msg("order paid")

	r.sendConfirmation(ctx, order, items, logger)
	r.redeemPromo(ctx, order, logger)

	return nil
}

func (r *Reconciler) sendConfirmation(ctx context.Context, order *model.Order, items []model.OrderItem, logger zerolog.Logger) {
	if order.Email == "" {
		return
	}

	msg, err := notify.PaymentConfirmation(order, items, r.cfg.Currency)
	if err == nil {
		err = r.sender.Send(ctx, msg)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to send payment confirmation")
	}
}

func (r *Reconciler) redeemPromo(ctx context.Context, order *model.Order, logger zerolog.Logger) {
	if order.PromoCode == nil || *order.PromoCode == "" {
		return
	}

	p, err := r.promos.Validate(ctx, *order.PromoCode, 0)
	if err != nil {
		logger.Warn().Err(err).Str("promo_code", *order.PromoCode).Msg("promo code not redeemed")
		return
	}

	if _, err := r.promos.IncrementUsage(ctx, p.ID); err != nil {
		logger.Error().Err(err).Str("promo_code", p.Code).Msg("failed to redeem promo code")
	}
}

func (r *Reconciler) acknowledge(orderReference string) *Acknowledgement {
	ts := r.now().Unix()
	return &Acknowledgement{
		OrderReference: orderReference,
		Status:         ackStatusAccept,
		Time:           ts,
		Signature:      Sign(r.cfg.SecretKey, orderReference, ackStatusAccept, strconv.FormatInt(ts, 10)),
	}
}
