package payment

import (
	"encoding/json"
	"errors"
)

// Transaction statuses reported by the gateway.
const (
	StatusApproved     = "Approved"
	StatusDeclined     = "Declined"
	StatusExpired      = "Expired"
	StatusInProcessing = "InProcessing"
	StatusPending      = "Pending"
	StatusRefunded     = "Refunded"
)

const ackStatusAccept = "accept"

var (
	// ErrMalformedNotification is returned for bodies that cannot be decoded or
	// lack the order reference or signature.
	ErrMalformedNotification = errors.New("malformed payment notification")

	// ErrInvalidSignature is returned when the merchant signature does not match.
	ErrInvalidSignature = errors.New("invalid payment notification signature")
)

// Notification is the service-url callback body sent by the gateway.
// Amount and ReasonCode keep their wire text so the signature is computed over
// exactly what was sent.
type Notification struct {
	MerchantAccount   string      `json:"merchantAccount"`
	OrderReference    string      `json:"orderReference"`
	MerchantSignature string      `json:"merchantSignature"`
	Amount            json.Number `json:"amount"`
	Currency          string      `json:"currency"`
	AuthCode          string      `json:"authCode"`
	Email             string      `json:"email,omitempty"`
	Phone             string      `json:"phone,omitempty"`
	CreatedDate       int64       `json:"createdDate,omitempty"`
	ProcessingDate    int64       `json:"processingDate,omitempty"`
	CardPan           string      `json:"cardPan"`
	CardType          string      `json:"cardType,omitempty"`
	IssuerBankCountry string      `json:"issuerBankCountry,omitempty"`
	IssuerBankName    string      `json:"issuerBankName,omitempty"`
	TransactionStatus string      `json:"transactionStatus"`
	Reason            string      `json:"reason,omitempty"`
	ReasonCode        json.Number `json:"reasonCode"`
	Fee               json.Number `json:"fee,omitempty"`
	PaymentSystem     string      `json:"paymentSystem,omitempty"`
}

// SignatureFields returns the signed tuple in gateway order.
func (n *Notification) SignatureFields() []string {
	return []string{
		n.MerchantAccount,
		n.OrderReference,
		n.Amount.String(),
		n.Currency,
		n.AuthCode,
		n.CardPan,
		n.TransactionStatus,
		n.ReasonCode.String(),
	}
}

// TransactionID is the identifier recorded on the order for this notification.
func (n *Notification) TransactionID() string {
	if n.AuthCode != "" {
		return n.AuthCode
	}
	return n.OrderReference
}

// Acknowledgement is the signed response the gateway expects for every
// accepted notification.
type Acknowledgement struct {
	OrderReference string `json:"orderReference"`
	Status         string `json:"status"`
	Time           int64  `json:"time"`
	Signature      string `json:"signature"`
}
