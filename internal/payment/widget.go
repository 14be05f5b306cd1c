package payment

import (
	"context"
	"fmt"
	"strconv"

	"mattress-shop/internal/config"
	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const merchantAuthType = "SimpleSignature"

// ErrOrderNotPayable is returned when an order cannot be paid online.
var ErrOrderNotPayable = model.NewDomainError(model.ErrCodeOrderNotPayable, "Order cannot be paid online")

// OrderFinder loads an order with its items by ID.
type OrderFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}

// WidgetParams are the signed purchase parameters handed to the payment widget.
type WidgetParams struct {
	MerchantAccount    string   `json:"merchantAccount"`
	MerchantAuthType   string   `json:"merchantAuthType"`
	MerchantDomainName string   `json:"merchantDomainName"`
	MerchantSignature  string   `json:"merchantSignature"`
	OrderReference     string   `json:"orderReference"`
	OrderDate          int64    `json:"orderDate"`
	Amount             string   `json:"amount"`
	Currency           string   `json:"currency"`
	ProductName        []string `json:"productName"`
	ProductPrice       []string `json:"productPrice"`
	ProductCount       []int    `json:"productCount"`
	ClientFirstName    string   `json:"clientFirstName"`
	ClientLastName     string   `json:"clientLastName"`
	ClientEmail        string   `json:"clientEmail"`
	ClientPhone        string   `json:"clientPhone"`
	Language           string   `json:"language"`
	ReturnURL          string   `json:"returnUrl,omitempty"`
	ServiceURL         string   `json:"serviceUrl,omitempty"`
}

// SignatureFields returns the signed purchase tuple in gateway order.
func (p *WidgetParams) SignatureFields() []string {
	fields := []string{
		p.MerchantAccount,
		p.MerchantDomainName,
		p.OrderReference,
		strconv.FormatInt(p.OrderDate, 10),
		p.Amount,
		p.Currency,
	}
	fields = append(fields, p.ProductName...)
	for _, c := range p.ProductCount {
		fields = append(fields, strconv.Itoa(c))
	}
	fields = append(fields, p.ProductPrice...)
	return fields
}

// Initiator prepares online payments for pending orders.
type Initiator struct {
	cfg    config.WayForPayConfig
	orders OrderFinder
	logger zerolog.Logger
}

// NewInitiator creates a new payment initiator.
func NewInitiator(cfg config.WayForPayConfig, orders OrderFinder, logger zerolog.Logger) *Initiator {
	return &Initiator{
		cfg:    cfg,
		orders: orders,
		logger: logger.With().Str("component", "payment-initiator").Logger(),
	}
}

// Initiate builds signed widget parameters for an unpaid online order.
// Orders whose previous attempt failed may be paid again.
func (i *Initiator) Initiate(ctx context.Context, orderID uuid.UUID) (*WidgetParams, error) {
	order, items, err := i.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.PaymentMethod.Online() ||
		(order.PaymentStatus != model.PaymentStatusPending && order.PaymentStatus != model.PaymentStatusFailed) {
		i.logger.Warn().
			Str("order_id", orderID.String()).
			Str("payment_method", string(order.PaymentMethod)).
			Str("payment_status", string(order.PaymentStatus)).
			Msg("order is not payable online")
		return nil, ErrOrderNotPayable
	}

	params := &WidgetParams{
		MerchantAccount:    i.cfg.MerchantAccount,
		MerchantAuthType:   merchantAuthType,
		MerchantDomainName: i.cfg.DomainName,
		OrderReference:     order.OrderNumber,
		OrderDate:          order.CreatedAt.Unix(),
		Amount:             model.MajorUnits(order.Total).String(),
		Currency:           i.cfg.Currency,
		ProductName:        make([]string, 0, len(items)),
		ProductPrice:       make([]string, 0, len(items)),
		ProductCount:       make([]int, 0, len(items)),
		ClientFirstName:    order.FirstName,
		ClientLastName:     order.LastName,
		ClientEmail:        order.Email,
		ClientPhone:        order.Phone,
		Language:           i.cfg.Language,
		ReturnURL:          i.cfg.ReturnURL,
		ServiceURL:         i.cfg.ServiceURL,
	}

	for _, item := range items {
		params.ProductName = append(params.ProductName, fmt.Sprintf("%s %s", item.Title, item.Size))
		params.ProductPrice = append(params.ProductPrice, model.MajorUnits(item.UnitPrice).String())
		params.ProductCount = append(params.ProductCount, item.Quantity)
	}

	params.MerchantSignature = Sign(i.cfg.SecretKey, params.SignatureFields()...)

	i.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("amount", params.Amount).
		Msg("payment initiated")

	return params, nil
}
