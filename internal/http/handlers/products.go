package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/catalog"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
)

type ProductsHandler struct {
	Catalog *catalog.Repo
}

func NewProductsHandler(r *catalog.Repo) *ProductsHandler {
	return &ProductsHandler{Catalog: r}
}

type productDTO struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Slug     string       `json:"slug"`
	Price    string       `json:"price"`
	Currency string       `json:"currency"`
	Variants []variantDTO `json:"variants,omitempty"`
}

type variantDTO struct {
	ID       string `json:"id"`
	SKU      string `json:"sku"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Stock    int    `json:"stock"`
}

func productToDTO(p catalog.Product, variants []catalog.Variant) productDTO {
	dto := productDTO{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Price:    amount(p.PriceCents),
		Currency: p.Currency,
	}
	for _, v := range variants {
		dto.Variants = append(dto.Variants, variantDTO{
			ID:       v.ID,
			SKU:      v.SKU,
			Price:    amount(v.PriceCents),
			Currency: v.Currency,
			Stock:    v.Stock,
		})
	}
	return dto
}

// GET /products?page=&pageSize=
func (h *ProductsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))

	res, err := h.Catalog.List(c.Request.Context(), catalog.ListParams{Page: page, PageSize: size})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	items := make([]productDTO, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, productToDTO(p, nil))
	}
	respond.OK(c, http.StatusOK, gin.H{"products": items, "total": res.Total})
}

// GET /products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
	id := c.Param("id")

	p, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Product not found.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	variants, err := h.Catalog.Variants(c.Request.Context(), p.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"product": productToDTO(p, variants)})
}
