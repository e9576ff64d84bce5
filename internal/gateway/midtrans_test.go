package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	s := NewSnap("SB-Mid-server-key", false)
	sig := Signature("SEACATERING-1-1700000000", "200", "2408000.00", "SB-Mid-server-key")

	assert.True(t, s.VerifySignature("SEACATERING-1-1700000000", "200", "2408000.00", sig))
	assert.False(t, s.VerifySignature("SEACATERING-1-1700000000", "200", "1.00", sig))
	assert.False(t, NewSnap("", false).VerifySignature("SEACATERING-1-1700000000", "200", "2408000.00", sig))
}

func TestCreateCheckoutWithoutKey(t *testing.T) {
	_, err := NewSnap("", false).CreateCheckout(Checkout{OrderID: "x", GrossAmount: 1})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2408000.00", FormatAmount(2408000))
}
