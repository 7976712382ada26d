package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/cartcookie"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/validation"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/cart"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/catalog"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
)

// The cart lives client-side in a signed cookie; these handlers only decode,
// mutate and re-sign it. Prices shown here are today's catalog prices, the
// order freezes its own at creation.
type CartHandler struct {
	DB     *gorm.DB
	Cookie *cartcookie.Codec
}

func NewCartHandler(db *gorm.DB, ck *cartcookie.Codec) *CartHandler {
	return &CartHandler{DB: db, Cookie: ck}
}

type cartLineDTO struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

// GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	ct := cart.FromCookie(h.Cookie.Get(c))

	if ct.Len() == 0 {
		respond.OK(c, http.StatusOK, gin.H{"lines": []cartLineDTO{}, "subtotal": amount(0), "itemCount": 0})
		return
	}

	ids := make([]string, 0, ct.Len())
	for _, it := range ct.Items() {
		ids = append(ids, it.ProductID)
	}

	prices, err := catalog.CurrentPrices(c.Request.Context(), h.DB, ids)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			// a product was deactivated since the cookie was written
			respond.Error(c, http.StatusConflict, "An item in your cart is no longer available.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	priceCents := make(map[string]int64, len(prices))
	for id, p := range prices {
		priceCents[id] = p.PriceCents
	}

	lines := make([]cartLineDTO, 0, len(ct.Lines()))
	for _, ln := range ct.Lines() {
		p := prices[ln.Item.ProductID]
		lines = append(lines, cartLineDTO{
			ProductID: ln.Item.ProductID,
			VariantID: ln.Item.VariantID,
			Name:      p.ProductName,
			UnitPrice: amount(p.PriceCents),
			Quantity:  ln.Quantity,
			LineTotal: amount(p.PriceCents * int64(ln.Quantity)),
		})
	}

	respond.OK(c, http.StatusOK, gin.H{
		"lines":     lines,
		"subtotal":  amount(ct.Subtotal(priceCents)),
		"itemCount": ct.Len(),
	})
}

type addCartItemInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	VariantID string `json:"variantId" binding:"omitempty,uuid"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var in addCartItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	// reject ids the catalog does not know before they enter the cookie
	if _, err := catalog.CurrentPrices(c.Request.Context(), h.DB, []string{in.ProductID}); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Product not found.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	ct := cart.FromCookie(h.Cookie.Get(c))
	ct.Add(cart.Item{ProductID: in.ProductID, VariantID: in.VariantID}, in.Quantity)

	if err := h.Cookie.Set(c, ct.ToCookie()); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	respond.OKMessage(c, http.StatusOK, gin.H{"itemCount": ct.Len()}, "Item added to cart.")
}

// DELETE /cart/items/:index
func (h *CartHandler) RemoveItem(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid cart index.")
		return
	}

	ct := cart.FromCookie(h.Cookie.Get(c))
	if err := ct.Remove(idx); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid cart index.")
		return
	}

	if err := h.Cookie.Set(c, ct.ToCookie()); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	respond.OKMessage(c, http.StatusOK, gin.H{"itemCount": ct.Len()}, "Item removed from cart.")
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.Cookie.Clear(c)
	respond.OKMessage(c, http.StatusOK, gin.H{"itemCount": 0}, "Cart cleared.")
}
