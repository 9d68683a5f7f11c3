package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckQuota(t *testing.T) {
	cases := []struct {
		name      string
		purchased int
		cartCount int
		limit     int
		want      error
	}{
		{name: "fits with room", purchased: 2, cartCount: 3, limit: 10, want: nil},
		{name: "exact fit", purchased: 8, cartCount: 2, limit: 10, want: nil},
		{name: "one over", purchased: 9, cartCount: 2, limit: 10, want: ErrQuotaExceeded},
		{name: "cart alone would fit", purchased: 9, cartCount: 5, limit: 10, want: ErrQuotaExceeded},
		{name: "already at limit", purchased: 10, cartCount: 1, limit: 10, want: ErrQuotaExceeded},
		{name: "empty cart", purchased: 0, cartCount: 0, limit: 10, want: ErrEmptyCart},
		// An empty cart under a fully consumed quota is still the
		// empty-cart outcome: zero pending items can never exceed.
		{name: "empty cart at limit", purchased: 10, cartCount: 0, limit: 10, want: ErrEmptyCart},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckQuota(tc.purchased, tc.cartCount, tc.limit)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
