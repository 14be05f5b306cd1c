package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoCheckResponse_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		resp     PromoCheckResponse
		expected string
	}{
		{
			name: "Applied code",
			resp: PromoCheckResponse{
				Valid: true, Discount: 1500, DiscountType: DiscountTypePercentage,
				DiscountValue: 10, Code: "SAVE10", Message: "Promo code applied",
			},
			expected: `{"valid":true,"discount":1500,"discount_type":"percentage","discount_value":10,"code":"SAVE10","message":"Promo code applied"}`,
		},
		{
			name: "Applied code with zero discount keeps the field",
			resp: PromoCheckResponse{
				Valid: true, Discount: 0, DiscountType: DiscountTypePercentage,
				DiscountValue: 10, Code: "SAVE10", Message: "Promo code applied",
			},
			expected: `{"valid":true,"discount":0,"discount_type":"percentage","discount_value":10,"code":"SAVE10","message":"Promo code applied"}`,
		},
		{
			name:     "Rejected code",
			resp:     PromoCheckResponse{Valid: false, Discount: 99, Code: "OLD", Message: "Promo code has expired"},
			expected: `{"valid":false,"message":"Promo code has expired"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))

			ptr, err := json.Marshal(&tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(ptr))
		})
	}
}
