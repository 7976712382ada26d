// Package cartcookie holds the client-side cart in a signed cookie. The cart
// is an ordered list with one entry per unit; the server never persists it.
package cartcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid cart cookie")

type Entry struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
}

type Cart struct {
	Entries []Entry `json:"entries"`
}

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: base64url(json).base64url(hmac(json))
func (c *Codec) Encode(cart Cart) (string, error) {
	payload, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	enc := base64.RawURLEncoding.EncodeToString(payload)
	return enc + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (Cart, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return Cart{}, ErrInvalid
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Cart{}, ErrInvalid
	}
	if !verify(c.Secret, payload, parts[1]) {
		return Cart{}, ErrInvalid
	}
	var cart Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return Cart{}, ErrInvalid
	}
	return cart, nil
}

// Get returns the cart from the request cookie. A missing or tampered cookie
// yields an empty cart; the bad cookie is cleared.
func (c *Codec) Get(ctx *gin.Context) Cart {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return Cart{}
	}
	cart, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return Cart{}
	}
	return cart
}

func (c *Codec) Set(ctx *gin.Context, cart Cart) error {
	val, err := c.Encode(cart)
	if err != nil {
		return err
	}
	maxAge := int((30 * 24 * time.Hour).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret, payload []byte, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
