package gateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// ErrNotConfigured is returned when no server key was supplied.
var ErrNotConfigured = errors.New("payment gateway is not configured")

// Checkout describes one hosted-checkout transaction.
type Checkout struct {
	OrderID       string
	GrossAmount   int64
	CustomerName  string
	CustomerEmail string
	ItemID        string
	ItemName      string
}

// Session is the processor's answer to a checkout request.
type Session struct {
	Token       string
	RedirectURL string
}

// Snap creates Midtrans Snap transactions.
type Snap struct {
	client    snap.Client
	serverKey string
}

// NewSnap builds a Snap client for the sandbox or production environment.
func NewSnap(serverKey string, production bool) *Snap {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	s := &Snap{serverKey: serverKey}
	s.client.New(serverKey, env)
	return s
}

// CreateCheckout opens a Snap transaction and returns its token and hosted page.
func (s *Snap) CreateCheckout(c Checkout) (Session, error) {
	if s == nil || s.serverKey == "" {
		return Session{}, ErrNotConfigured
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  c.OrderID,
			GrossAmt: c.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: c.CustomerName,
			Email: c.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    c.ItemID,
				Price: c.GrossAmount,
				Qty:   1,
				Name:  c.ItemName,
			},
		},
	}

	resp, mErr := s.client.CreateTransaction(req)
	if mErr != nil {
		return Session{}, fmt.Errorf("midtrans: %s", mErr.GetMessage())
	}
	if resp == nil || resp.Token == "" {
		return Session{}, errors.New("midtrans returned no token")
	}
	return Session{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifySignature checks a notification's signature_key, which Midtrans
// computes as hex(sha512(order_id + status_code + gross_amount + server_key)).
func (s *Snap) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	if s == nil || s.serverKey == "" {
		return false
	}
	expected := Signature(orderID, statusCode, grossAmount, s.serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Signature computes the notification signature for the given fields.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// FormatAmount renders an amount the way Midtrans echoes gross_amount.
func FormatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10) + ".00"
}
