// Package payment integrates the WayForPay gateway: it signs outbound widget
// parameters and reconciles inbound payment notifications with stored orders.
package payment

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Sign returns the lower-case hex HMAC-MD5 of the ";"-joined fields keyed by secret.
func Sign(secret string, fields ...string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, ";")))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the fields. The comparison runs in
// constant time.
func Verify(secret, signature string, fields ...string) bool {
	expected := Sign(secret, fields...)
	return hmac.Equal([]byte(expected), []byte(signature))
}
