package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		fields []string
		want   string
	}{
		{
			name:   "rfc2104 style vector",
			secret: "key",
			fields: []string{"The quick brown fox jumps over the lazy dog"},
			want:   "80070713463e7749b90c2dc24911e275",
		},
		{
			name:   "service notification tuple",
			secret: "flk3409refn54t54t*FNJRET",
			fields: []string{"test_merch_n1", "DH783023", "1547.36", "UAH", "541963", "4102****8217", "Approved", "1100"},
			want:   "71426e83ba8438ba4cab90d7e541d1f0",
		},
		{
			name:   "acknowledgement tuple",
			secret: "secret",
			fields: []string{"ORD-20250601-ABC123", "accept", "1748779200"},
			want:   "4e1aafd70b99816ee5cefe29fa3b033e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sign(tt.secret, tt.fields...))
		})
	}
}

func TestSign_FieldOrderMatters(t *testing.T) {
	assert.NotEqual(t, Sign("k", "a", "b"), Sign("k", "b", "a"))
	assert.NotEqual(t, Sign("k", "a", "b"), Sign("other", "a", "b"))
}

func TestVerify(t *testing.T) {
	sig := Sign("secret", "a", "b", "c")

	assert.True(t, Verify("secret", sig, "a", "b", "c"))
	assert.False(t, Verify("secret", sig, "a", "b", "x"))
	assert.False(t, Verify("wrong", sig, "a", "b", "c"))
	assert.False(t, Verify("secret", "", "a", "b", "c"))
	assert.False(t, Verify("secret", sig[:len(sig)-1]+"0", "a", "b", "c"))
}
