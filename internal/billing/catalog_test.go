package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
)

func testPrice(id, name string, amount int64, active bool) *stripe.Price {
	return &stripe.Price{
		ID:         id,
		UnitAmount: amount,
		Currency:   stripe.CurrencyUSD,
		Recurring:  &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalMonth},
		Product: &stripe.Product{
			Name:     name,
			Active:   active,
			Metadata: map[string]string{},
		},
	}
}

type stubLister struct {
	prices []*stripe.Price
	err    error
	calls  int
}

func (s *stubLister) list(context.Context) ([]*stripe.Price, error) {
	s.calls++
	return s.prices, s.err
}

func newTestCatalog(l *stubLister) (*Catalog, *time.Time) {
	clock := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	c := NewCatalog("", time.Minute)
	c.list = l.list
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestPlansFetchOutlivesCancelledCaller(t *testing.T) {
	c, _ := newTestCatalog(&stubLister{})
	var fetchErr error
	var hasDeadline bool
	c.list = func(ctx context.Context) ([]*stripe.Price, error) {
		fetchErr = ctx.Err()
		_, hasDeadline = ctx.Deadline()
		return []*stripe.Price{testPrice("price_starter", "Starter", 4900, true)}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plans := c.Plans(ctx)
	require.Len(t, plans, 1)
	assert.Equal(t, "Starter", plans[0].Name)
	assert.NoError(t, fetchErr)
	assert.True(t, hasDeadline)
}

func TestPlansWithoutStripe(t *testing.T) {
	c := NewCatalog("", 0)
	assert.Equal(t, DefaultPlans, c.Plans(context.Background()))
	assert.Equal(t, DefaultCacheTTL, c.ttl)
}

func TestPlansFromStripe(t *testing.T) {
	pro := testPrice("price_pro", "Professional", 19900, true)
	pro.Product.Metadata["featured"] = "true"
	l := &stubLister{prices: []*stripe.Price{
		pro,
		testPrice("price_starter", "Starter", 4900, true),
		testPrice("price_legacy", "Legacy", 999, false),
	}}
	c, _ := newTestCatalog(l)

	plans := c.Plans(context.Background())
	require.Len(t, plans, 2)
	assert.Equal(t, "Starter", plans[0].Name)
	assert.Equal(t, "usd", plans[0].Currency)
	assert.Equal(t, "month", plans[0].Interval)
	assert.Equal(t, "Professional", plans[1].Name)
	assert.True(t, plans[1].Featured)
}

func TestPlansCached(t *testing.T) {
	l := &stubLister{prices: []*stripe.Price{testPrice("price_starter", "Starter", 4900, true)}}
	c, clock := newTestCatalog(l)
	ctx := context.Background()

	c.Plans(ctx)
	c.Plans(ctx)
	assert.Equal(t, 1, l.calls)

	*clock = clock.Add(2 * time.Minute)
	c.Plans(ctx)
	assert.Equal(t, 2, l.calls)
}

func TestPlansFallback(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		c, _ := newTestCatalog(&stubLister{})
		assert.Equal(t, DefaultPlans, c.Plans(context.Background()))
	})

	t.Run("error before first fetch", func(t *testing.T) {
		c, _ := newTestCatalog(&stubLister{err: errors.New("stripe down")})
		assert.Equal(t, DefaultPlans, c.Plans(context.Background()))
	})

	t.Run("error keeps stale plans", func(t *testing.T) {
		l := &stubLister{prices: []*stripe.Price{testPrice("price_starter", "Starter", 4900, true)}}
		c, clock := newTestCatalog(l)
		ctx := context.Background()
		require.Len(t, c.Plans(ctx), 1)

		*clock = clock.Add(time.Hour)
		l.err = errors.New("stripe down")
		plans := c.Plans(ctx)
		require.Len(t, plans, 1)
		assert.Equal(t, "Starter", plans[0].Name)
	})
}

func TestPlansFromPricesUsesNickname(t *testing.T) {
	p := testPrice("price_x", "", 100, true)
	p.Nickname = "Monthly"
	plans := plansFromPrices([]*stripe.Price{p, nil, {ID: "no_product"}})
	require.Len(t, plans, 1)
	assert.Equal(t, "Monthly", plans[0].Name)
}
