package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"splitup-be/internal/models"
	"splitup-be/internal/services"
	"splitup-be/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	db     *sql.DB
	orders *services.OrderService
	groups *services.GroupService
}

func NewAdminHandler(db *sql.DB, orders *services.OrderService, groups *services.GroupService) *AdminHandler {
	return &AdminHandler{db: db, orders: orders, groups: groups}
}

// GetOrders lists every order with optional search and status filters,
// plus revenue stats for the dashboard header.
func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	status := c.Query("status")

	filtered := make([]models.Order, 0, len(orders))
	paidTotal := 0
	for _, order := range orders {
		if status != "" && order.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(order.Name), search) &&
			!strings.Contains(strings.ToLower(order.Email), search) &&
			!strings.Contains(strings.ToLower(order.ServiceName), search) {
			continue
		}
		filtered = append(filtered, order)
		paidTotal += order.AmountPaid
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": filtered,
		"stats": gin.H{
			"total":      len(filtered),
			"paid_total": paidTotal,
		},
	})
}

// UpdateOrderStatus moves an order along its lifecycle out of band.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req models.AdminOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.OverrideStatus(c.Request.Context(), orderID, req.NewStatus)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GetGroups returns the current grouping of fully paid orders.
func (h *AdminHandler) GetGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"total":  len(groups),
	})
}

// SplitGroups chunks every group into subgroups of at most ?size=N
// members, the unit one set of credentials goes to.
func (h *AdminHandler) SplitGroups(c *gin.Context) {
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subgroup size"})
		return
	}

	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load groups"})
		return
	}

	type splitGroup struct {
		models.Group
		Subgroups []models.Subgroup `json:"subgroups"`
	}

	result := make([]splitGroup, 0, len(groups))
	for _, group := range groups {
		subgroups, err := services.SplitIntoSubgroups(group, size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result = append(result, splitGroup{Group: group, Subgroups: subgroups})
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": result,
		"total":  len(result),
	})
}

// DistributeCredentials sends the shared account login to the selected
// orders. Partial failure is reported, not rolled back.
func (h *AdminHandler) DistributeCredentials(c *gin.Context) {
	var req models.DistributeCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.groups.DistributeCredentials(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Credential distribution finished",
		"sent":    result.Sent,
		"failed":  result.Failed,
		"failed_ids": func() []string {
			if result.FailedIDs == nil {
				return []string{}
			}
			return result.FailedIDs
		}(),
	})
}

// AddAdmin promotes an existing user to the admin role.
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var req models.AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.db.Exec(`
		UPDATE users SET role = $1, updated_at = NOW() WHERE email = $2
	`, models.RoleAdmin, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}

	rows, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User promoted to admin",
		"email":   req.Email,
	})
}
