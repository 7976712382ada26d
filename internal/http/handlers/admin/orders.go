package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/validation"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/orders"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
)

type OrdersHandler struct {
	Admin *orders.AdminService
}

func NewOrdersHandler(svc *orders.AdminService) *OrdersHandler {
	return &OrdersHandler{Admin: svc}
}

type transitionInput struct {
	Action string `json:"action" binding:"required,oneof=process ship deliver cancel"`
	Note   string `json:"note" binding:"omitempty,max=255"`
}

// PATCH /admin/orders/:id/status
func (h *OrdersHandler) Transition(c *gin.Context) {
	adminID, _ := middleware.CurrentUserID(c)

	var in transitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	o, err := h.Admin.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID:     c.Param("id"),
		ActorUserID: adminID,
		Action:      in.Action,
		Note:        in.Note,
	})
	if err != nil {
		var te *orders.TransitionError
		switch {
		case errors.Is(err, orders.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Order not found.")
		case errors.As(err, &te):
			respond.Error(c, http.StatusConflict, "Order cannot move from "+te.From+" to "+te.To+".")
		case errors.Is(err, orders.ErrNotActionable):
			respond.Error(c, http.StatusBadRequest, "Invalid transition request.")
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	respond.OKMessage(c, http.StatusOK, gin.H{
		"order": gin.H{
			"id":          o.ID,
			"orderNumber": o.OrderNumber,
			"status":      string(o.Status),
		},
	}, "Order updated.")
}
