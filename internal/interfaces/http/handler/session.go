package handler

import (
	"context"
	"errors"
	"net/http"

	saleapp "github.com/edusabi/mobileFacul/internal/application/sale"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/infrastructure/logger"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionManager is the session API used by the HTTP layer
type SessionManager interface {
	Create() saleapp.SessionView
	View(id uuid.UUID) (saleapp.SessionView, error)
	Delete(id uuid.UUID) error
	SelectCustomer(id uuid.UUID, customerID int64) (saleapp.SessionView, error)
	ClearCustomer(id uuid.UUID) (saleapp.SessionView, error)
	AddItem(id uuid.UUID, productID int64, quantity int) (saleapp.SessionView, error)
	UpdateQuantity(id, itemID uuid.UUID, raw string) (saleapp.SessionView, error)
	RemoveItem(id, itemID uuid.UUID) (saleapp.SessionView, error)
	Checkout(ctx context.Context, id uuid.UUID, req saleapp.CheckoutInput) (*saleapp.Outcome, error)
}

// SessionHandler exposes sale sessions: customer selection, cart edits and checkout
type SessionHandler struct {
	BaseHandler
	sessions SessionManager
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CheckoutResponse is the checkout outcome plus the delivery failure, if any.
// The sale is registered whenever State is DONE, even with a warning.
type CheckoutResponse struct {
	*saleapp.Outcome
	Warning *dto.ErrorInfo `json:"warning,omitempty"`
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.SessionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, false
	}
	return uuid.MustParse(uri.ID), true
}

func (h *SessionHandler) itemIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	var uri dto.ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return uuid.MustParse(uri.ID), uuid.MustParse(uri.ItemID), true
}

func (h *SessionHandler) respond(c *gin.Context, view saleapp.SessionView, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Create godoc
// @Summary      Open a sale session
// @Description  Creates a session with an empty cart and no customer
// @Tags         sessions
// @Produce      json
// @Success      201 {object} dto.Response{data=saleapp.SessionView}
// @Router       /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	view := h.sessions.Create()
	logger.GetGinLogger(c).Info("session created", zap.String("session_id", view.ID.String()))
	h.Created(c, view)
}

// Get godoc
// @Summary      Get a sale session
// @Description  Returns the cart, totals, selected customer and last checkout state
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Success      200 {object} dto.Response{data=saleapp.SessionView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	view, err := h.sessions.View(id)
	h.respond(c, view, err)
}

// Delete godoc
// @Summary      Discard a sale session
// @Description  Drops the session and its cart
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SelectCustomer godoc
// @Summary      Select the customer
// @Description  Sets the buyer of the session from the catalog cache
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        request body saleapp.SelectCustomerInput true "Customer selection"
// @Success      200 {object} dto.Response{data=saleapp.SessionView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id}/customer [put]
func (h *SessionHandler) SelectCustomer(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req saleapp.SelectCustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	view, err := h.sessions.SelectCustomer(id, req.CustomerID)
	h.respond(c, view, err)
}

// ClearCustomer godoc
// @Summary      Clear the customer
// @Description  Resets the buyer of the session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Success      200 {object} dto.Response{data=saleapp.SessionView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id}/customer [delete]
func (h *SessionHandler) ClearCustomer(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	view, err := h.sessions.ClearCustomer(id)
	h.respond(c, view, err)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Adds quantity units of a product. A product already in the cart has its line quantity increased.
// @Tags         cart-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        request body saleapp.AddItemInput true "Product and quantity"
// @Success      201 {object} dto.Response{data=saleapp.SessionView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id}/items [post]
func (h *SessionHandler) AddItem(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req saleapp.AddItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	view, err := h.sessions.AddItem(id, req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// UpdateQuantity godoc
// @Summary      Edit a line quantity
// @Description  Sets a line quantity from the raw text the user typed. Text without leading digits sets it to zero.
// @Tags         cart-items
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        itemId path string true "Cart item ID" format(uuid)
// @Param        request body saleapp.UpdateQuantityInput true "Raw quantity"
// @Success      200 {object} dto.Response{data=saleapp.SessionView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id}/items/{itemId} [patch]
func (h *SessionHandler) UpdateQuantity(c *gin.Context) {
	id, itemID, ok := h.itemIDs(c)
	if !ok {
		return
	}
	var req saleapp.UpdateQuantityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	view, err := h.sessions.UpdateQuantity(id, itemID, req.Quantity)
	h.respond(c, view, err)
}

// RemoveItem godoc
// @Summary      Remove a cart line
// @Description  Removes a line. Unknown lines are ignored.
// @Tags         cart-items
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        itemId path string true "Cart item ID" format(uuid)
// @Success      200 {object} dto.Response{data=saleapp.SessionView}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sessions/{id}/items/{itemId} [delete]
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	id, itemID, ok := h.itemIDs(c)
	if !ok {
		return
	}
	view, err := h.sessions.RemoveItem(id, itemID)
	h.respond(c, view, err)
}

// Checkout godoc
// @Summary      Register the sale
// @Description  Runs the checkout of the session cart. The body is optional and overrides the configured seller and payment method. Failed steps answer with the outcome in data.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        request body saleapp.CheckoutInput false "Per-checkout overrides"
// @Success      201 {object} dto.Response{data=CheckoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{data=CheckoutResponse,error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{data=CheckoutResponse,error=dto.ErrorInfo}
// @Router       /sessions/{id}/checkout [post]
func (h *SessionHandler) Checkout(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req saleapp.CheckoutInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return
		}
	}

	out, err := h.sessions.Checkout(c.Request.Context(), id, req)
	if out == nil {
		h.HandleError(c, err)
		return
	}

	log := logger.GetGinLogger(c).With(zap.String("checkout_state", out.State.String()))
	if out.Sale != nil {
		log = log.With(zap.Int64("sale_id", out.Sale.ID))
	}

	if out.State == sale.CheckoutStateDone {
		resp := CheckoutResponse{Outcome: out}
		if err != nil {
			_ = c.Error(err)
			_, body := errorBody(c, err, nil)
			resp.Warning = body.Error
			log.Warn("sale registered without receipt delivery", zap.Error(err))
		}
		c.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
		return
	}

	if err == nil {
		err = errors.New("checkout ended in state " + out.State.String())
	}
	_ = c.Error(err)
	if out.Orphaned {
		log.Error("checkout left an orphan sale header", zap.Error(err))
	}
	status, body := errorBody(c, err, CheckoutResponse{Outcome: out})
	c.JSON(status, body)
}
