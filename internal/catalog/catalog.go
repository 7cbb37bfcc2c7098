package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is one purchasable configuration of a subscription service.
// Catalog data is immutable at runtime; orders copy the fields they
// need at purchase time.
type Plan struct {
	ID             string `yaml:"id" json:"id"`
	ServiceName    string `yaml:"service_name" json:"service_name"`
	PlanName       string `yaml:"plan_name" json:"plan_name"`
	TotalPrice     int    `yaml:"total_price" json:"total_price"`
	SplitBetween   int    `yaml:"split_between" json:"split_between"`
	PerPersonShare int    `yaml:"per_person_share" json:"per_person_share"`
	Active         bool   `yaml:"active" json:"active"`
}

// Catalog is a read-only plan lookup.
type Catalog struct {
	plans []Plan
	byID  map[string]Plan
}

// DefaultPlans is the built-in storefront catalog.
func DefaultPlans() []Plan {
	return []Plan{
		{ID: "netflix-premium", ServiceName: "Netflix", PlanName: "Premium 4K + HDR", TotalPrice: 649, SplitBetween: 5, PerPersonShare: 139, Active: true},
		{ID: "spotify-family", ServiceName: "Spotify", PlanName: "Premium Family", TotalPrice: 199, SplitBetween: 6, PerPersonShare: 34, Active: true},
		{ID: "prime-video", ServiceName: "Prime Video", PlanName: "Prime Video", TotalPrice: 299, SplitBetween: 4, PerPersonShare: 89, Active: true},
		{ID: "hotstar-premium", ServiceName: "Hotstar", PlanName: "Premium", TotalPrice: 299, SplitBetween: 4, PerPersonShare: 139, Active: true},
		{ID: "youtube-premium", ServiceName: "YouTube Premium", PlanName: "Premium Family", TotalPrice: 229, SplitBetween: 6, PerPersonShare: 39, Active: true},
		{ID: "disney-plus", ServiceName: "Disney+", PlanName: "Premium", TotalPrice: 799, SplitBetween: 4, PerPersonShare: 199, Active: true},
		{ID: "adobe-cc", ServiceName: "Adobe Creative Cloud", PlanName: "All Apps", TotalPrice: 1799, SplitBetween: 3, PerPersonShare: 599, Active: true},
		{ID: "canva-pro", ServiceName: "Canva Pro", PlanName: "Pro Team", TotalPrice: 499, SplitBetween: 5, PerPersonShare: 99, Active: true},
		{ID: "microsoft-365", ServiceName: "Microsoft 365", PlanName: "Family", TotalPrice: 899, SplitBetween: 6, PerPersonShare: 149, Active: true},
	}
}

// New builds a catalog from the given plans, rejecting entries that
// could not price an order.
func New(plans []Plan) (*Catalog, error) {
	byID := make(map[string]Plan, len(plans))
	for _, plan := range plans {
		if plan.ID == "" {
			return nil, fmt.Errorf("catalog: plan with empty id")
		}
		if plan.SplitBetween < 2 {
			return nil, fmt.Errorf("catalog: plan %s: split_between must be at least 2", plan.ID)
		}
		if plan.PerPersonShare <= 0 {
			return nil, fmt.Errorf("catalog: plan %s: per_person_share must be positive", plan.ID)
		}
		if _, exists := byID[plan.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate plan id %s", plan.ID)
		}
		byID[plan.ID] = plan
	}
	return &Catalog{plans: plans, byID: byID}, nil
}

// Load reads a plan catalog from a YAML file, falling back to the
// built-in default catalog when the file does not exist.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(DefaultPlans())
		}
		return nil, fmt.Errorf("catalog: failed to read %s: %v", path, err)
	}

	var file struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse %s: %v", path, err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("catalog: %s contains no plans", path)
	}
	return New(file.Plans)
}

// Plans returns all catalog entries in declaration order.
func (c *Catalog) Plans() []Plan {
	return c.plans
}

// Get looks a plan up by its identifier.
func (c *Catalog) Get(id string) (Plan, bool) {
	plan, ok := c.byID[id]
	return plan, ok
}
