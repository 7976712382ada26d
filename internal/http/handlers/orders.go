package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/validation"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
)

type OrdersHandler struct {
	Orders *orders.Service
	Repo   *orders.Repo
}

func NewOrdersHandler(svc *orders.Service, repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Orders: svc, Repo: repo}
}

type orderLineInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	VariantID string `json:"variantId" binding:"omitempty,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=99"`
}

type createOrderInput struct {
	Items           []orderLineInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress json.RawMessage  `json:"shippingAddress" binding:"omitempty"`
	BillingAddress  json.RawMessage  `json:"billingAddress" binding:"omitempty"`
	Notes           string           `json:"notes" binding:"omitempty,max=1000"`
}

// POST /orders
func (h *OrdersHandler) Create(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var in createOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	lines := make([]orders.LineInput, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, orders.LineInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	o, items, err := h.Orders.CreateOrder(c.Request.Context(), orders.CreateOrderInput{
		UserID:              userID,
		Lines:               lines,
		ShippingAddressJSON: in.ShippingAddress,
		BillingAddressJSON:  in.BillingAddress,
		Notes:               in.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrCartEmpty):
			respond.Error(c, http.StatusBadRequest, "Order must contain at least one item.")
		case errors.Is(err, orders.ErrProductUnavailable):
			respond.Error(c, http.StatusNotFound, "One or more products are unavailable.")
		case errors.Is(err, orders.ErrCurrencyMismatch):
			respond.Error(c, http.StatusBadRequest, "All items must share one currency.")
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OKMessage(c, http.StatusCreated, gin.H{"order": orderToDTO(o, items)}, "Order created.")
}

// GET /orders?page=&pageSize=&status=
func (h *OrdersHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))

	res, err := h.Repo.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   userID,
		Page:     page,
		PageSize: size,
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out := make([]orderDTO, 0, len(res.Items))
	for _, it := range res.Items {
		dto := orderToDTO(it.Order, nil)
		dto.ItemCount = it.Count
		out = append(out, dto)
	}
	respond.OK(c, http.StatusOK, gin.H{"orders": out, "total": res.Total})
}

// GET /orders/:id
func (h *OrdersHandler) Get(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	o, items, err := h.Repo.GetWithItems(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Order not found.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"order": orderToDTO(o, items)})
}
