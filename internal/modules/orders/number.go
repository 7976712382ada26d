package orders

import (
	"crypto/rand"
	"fmt"
	"time"
)

const numberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber generates the human-facing order number:
// YO-<unix-millis>-<9 random uppercase alphanumerics>. The random suffix
// avoids collisions without a central sequence; the orders table still
// carries a unique index as the backstop.
func NewOrderNumber() string {
	return fmt.Sprintf("YO-%d-%s", time.Now().UnixMilli(), randSuffix(9))
}

func randSuffix(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = numberAlphabet[int(b[i])%len(numberAlphabet)]
	}
	return string(b)
}
