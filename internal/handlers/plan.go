package handlers

import (
	"net/http"

	"splitup-be/internal/catalog"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	catalog *catalog.Catalog
}

func NewPlanHandler(cat *catalog.Catalog) *PlanHandler {
	return &PlanHandler{catalog: cat}
}

// GetPlans lists the active subscription plans.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	plans := h.catalog.Plans()

	active := make([]catalog.Plan, 0, len(plans))
	for _, plan := range plans {
		if plan.Active {
			active = append(active, plan)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": active,
		"total": len(active),
	})
}

// GetPlanByID returns one plan, active or not.
func (h *PlanHandler) GetPlanByID(c *gin.Context) {
	plan, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
