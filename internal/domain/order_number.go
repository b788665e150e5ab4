package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

const orderTokenLen = 7

// NewOrderNumber returns ORD-<unix millis>-<7 uppercase base32 chars>.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), rand.Text()[:orderTokenLen])
}
