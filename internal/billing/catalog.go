// Package billing lists the plans shown on the pricing page.
package billing

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/price"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL = 10 * time.Minute

	fetchTimeout = 10 * time.Second
)

// Plan is one purchasable tier.
type Plan struct {
	ID          string
	Name        string
	Description string
	// Amount is in minor units of Currency.
	Amount   int64
	Currency string
	Interval string
	// ContactSales plans have no list price.
	ContactSales bool
	Featured     bool
}

// DefaultPlans are served when Stripe is not configured or unreachable.
var DefaultPlans = []Plan{
	{
		ID:          "starter",
		Name:        "Starter",
		Description: "Up to 500 documents per month with standard extraction.",
		Amount:      4900,
		Currency:    "usd",
		Interval:    "month",
	},
	{
		ID:          "professional",
		Name:        "Professional",
		Description: "Up to 5,000 documents per month with priority processing.",
		Amount:      19900,
		Currency:    "usd",
		Interval:    "month",
		Featured:    true,
	},
	{
		ID:           "enterprise",
		Name:         "Enterprise",
		Description:  "Unlimited volume, SSO and a dedicated support team.",
		ContactSales: true,
	},
}

type listFunc func(ctx context.Context) ([]*stripe.Price, error)

// Catalog serves plans from active recurring Stripe prices, cached for ttl.
type Catalog struct {
	list  listFunc
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu        sync.RWMutex
	plans     []Plan
	fetchedAt time.Time
}

// NewCatalog creates a catalog backed by Stripe. With an empty secretKey it
// always serves DefaultPlans.
func NewCatalog(secretKey string, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Catalog{ttl: ttl, now: time.Now}
	if secretKey != "" {
		stripe.Key = secretKey
		c.list = listActivePrices
	}
	return c
}

// Plans returns the current plan list, never empty.
func (c *Catalog) Plans(ctx context.Context) []Plan {
	if c.list == nil {
		return DefaultPlans
	}

	c.mu.RLock()
	if c.plans != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		plans := c.plans
		c.mu.RUnlock()
		return plans
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("plans", func() (any, error) {
		// Shared by every waiting request, so it must outlive the first caller.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		prices, err := c.list(fetchCtx)
		if err != nil {
			return nil, err
		}
		plans := plansFromPrices(prices)
		if len(plans) == 0 {
			plans = DefaultPlans
		}

		c.mu.Lock()
		c.plans = plans
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return plans, nil
	})
	if err != nil {
		slog.Warn("failed to list stripe prices, serving default plans", "error", err)
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.plans != nil {
			return c.plans
		}
		return DefaultPlans
	}
	return v.([]Plan)
}

func listActivePrices(ctx context.Context) ([]*stripe.Price, error) {
	params := &stripe.PriceListParams{
		Active: stripe.Bool(true),
		Type:   stripe.String(string(stripe.PriceTypeRecurring)),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(20)
	params.AddExpand("data.product")

	var prices []*stripe.Price
	iter := price.List(params)
	for iter.Next() {
		prices = append(prices, iter.Price())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

// plansFromPrices keeps prices whose product is active, cheapest first.
func plansFromPrices(prices []*stripe.Price) []Plan {
	var plans []Plan
	for _, p := range prices {
		if p == nil || p.Product == nil || !p.Product.Active {
			continue
		}
		plan := Plan{
			ID:          p.ID,
			Name:        p.Product.Name,
			Description: p.Product.Description,
			Amount:      p.UnitAmount,
			Currency:    string(p.Currency),
			Featured:    p.Product.Metadata["featured"] == "true",
		}
		if plan.Name == "" {
			plan.Name = p.Nickname
		}
		if p.Recurring != nil {
			plan.Interval = string(p.Recurring.Interval)
		}
		plans = append(plans, plan)
	}
	slices.SortStableFunc(plans, func(a, b Plan) int {
		return cmp.Compare(a.Amount, b.Amount)
	})
	return plans
}
