package models

// Group is a derived view, never persisted: all fully paid orders for
// the same (service, plan) pair that still await credentials. It is
// recomputed from the order store on every read so it cannot drift from
// order state.
type Group struct {
	ServiceName string  `json:"service_name"`
	PlanName    string  `json:"plan_name"`
	Members     []Order `json:"members"`
}

// Key identifies the group in API responses, e.g. "Netflix - Premium 4K + HDR".
func (g Group) Key() string {
	return g.ServiceName + " - " + g.PlanName
}

// Subgroup is an ephemeral slice of a group, the unit one set of shared
// credentials is sent to.
type Subgroup struct {
	Index   int     `json:"index"`
	Members []Order `json:"members"`
}

type DistributeCredentialsRequest struct {
	OrderIDs       []string `json:"order_ids" binding:"required"`
	Username       string   `json:"username" binding:"required"`
	Password       string   `json:"password" binding:"required"`
	AdditionalInfo string   `json:"additional_info"`
}

// DistributeCredentialsResult reports the outcome of a best-effort
// batch send: members are updated independently and one failure never
// rolls back the rest.
type DistributeCredentialsResult struct {
	Sent      int      `json:"sent"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}
