package fleet

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday afternoon.
var testNow = time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New(WithClock(func() time.Time { return testNow }))
	s.Seed("u-driver", "u-customer")
	return s
}

func TestDrivers(t *testing.T) {
	s := seeded(t)

	page := s.ListDrivers(dto.DriverListQuery{Status: dto.StatusPending})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "d-2", page.Items[0].ID)

	d, err := s.ApproveDriver("d-2")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusActive, d.Status)
	assert.True(t, d.Vehicle.Verified)
	assert.Equal(t, testNow, d.ApprovedAt)

	_, err = s.SuspendDriver("d-1", "u-admin", " ")
	assert.ErrorIs(t, err, common.ErrorValidation)

	d, err = s.SuspendDriver("d-1", "u-admin", "complaints")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusSuspended, d.Status)
	assert.False(t, d.Online)
	assert.Equal(t, "u-admin", d.SuspendedBy)

	_, err = s.GetDriver("d-9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestOrders_ListFilters(t *testing.T) {
	s := seeded(t)

	all := s.ListOrders(dto.OrderListQuery{ListQuery: dto.ListQuery{Limit: 100}})
	assert.Equal(t, 42, all.Total)
	assert.Equal(t, "o-2002", all.Items[0].ID)

	pending := s.ListOrders(dto.OrderListQuery{Status: dto.OrderPending})
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "o-2001", pending.Items[0].ID)

	today := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	ranged := s.ListOrders(dto.OrderListQuery{From: today, To: today.AddDate(0, 0, 1)})
	assert.Equal(t, 3, ranged.Total)

	byPlace := s.ListOrders(dto.OrderListQuery{ListQuery: dto.ListQuery{Search: "sfo", Limit: 100}})
	assert.NotZero(t, byPlace.Total)
	for _, o := range byPlace.Items {
		assert.True(t, o.Pickup.Address == "SFO Terminal 2" || o.Dropoff.Address == "SFO Terminal 2")
	}
}

func TestOrders_Lifecycle(t *testing.T) {
	s := seeded(t)

	_, err := s.UpdateOrderStatus("o-2001", dto.OrderPickedUp)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.AssignDriver("o-2001", "d-2")
	assert.ErrorIs(t, err, common.ErrorValidation, "pending drivers cannot take orders")

	o, err := s.AssignDriver("o-2001", "d-1")
	require.NoError(t, err)
	assert.Equal(t, dto.OrderAccepted, o.Status)
	assert.Equal(t, "d-1", o.DriverID)

	for _, st := range []string{dto.OrderPickedUp, dto.OrderDelivered} {
		o, err = s.UpdateOrderStatus("o-2001", st)
		require.NoError(t, err)
		assert.Equal(t, st, o.Status)
	}

	_, err = s.UpdateOrderStatus("o-2001", dto.OrderCancelled)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = s.AssignDriver("o-2001", "d-1")
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = s.UpdateOrderStatus("o-404", dto.OrderCancelled)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPromotions(t *testing.T) {
	s := seeded(t)
	req := dto.PromotionRequest{Code: "spring20", DiscountType: "PERCENT", Value: 20, StartsAt: testNow, EndsAt: testNow.AddDate(0, 1, 0), Active: true}

	p, err := s.CreatePromotion(req)
	require.NoError(t, err)
	assert.Equal(t, "SPRING20", p.Code)

	_, err = s.CreatePromotion(req)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	req.Code = "welcome10"
	_, err = s.UpdatePromotion(p.ID, req)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	req.Code = "SPRING25"
	req.Value = 25
	p2, err := s.UpdatePromotion("p-1", req)
	require.NoError(t, err)
	assert.Equal(t, 87, p2.Used)

	assert.Equal(t, 3, s.ListPromotions(dto.ListQuery{}).Total)
	require.NoError(t, s.DeletePromotion(p.ID))
	assert.ErrorIs(t, s.DeletePromotion(p.ID), common.ErrorNotFound)
	assert.Equal(t, 1, s.ListPromotions(dto.ListQuery{Search: "spring"}).Total)
}

func TestTickets(t *testing.T) {
	s := seeded(t)

	open := s.ListTickets(dto.TicketListQuery{Status: "OPEN"})
	require.Len(t, open.Items, 2)
	assert.Equal(t, "t-1", open.Items[0].ID)

	tk, err := s.ReplyTicket("t-1", "u-admin", "Sorry about that.")
	require.NoError(t, err)
	require.Len(t, tk.Messages, 2)
	assert.Equal(t, "u-admin", tk.Messages[1].AuthorID)

	tk.Messages[0].Body = "mutated"
	again, err := s.GetTicket("t-1")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Messages[0].Body)

	_, err = s.CloseTicket("t-1")
	require.NoError(t, err)
	_, err = s.ReplyTicket("t-1", "u-admin", "late")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestReports(t *testing.T) {
	s := seeded(t)

	day, err := s.Orders(dto.PeriodDay)
	require.NoError(t, err)
	require.Len(t, day.Points, 24)
	assert.Equal(t, "15:00", day.Points[15].Label)
	assert.Equal(t, 3.0, day.Points[15].Value)
	assert.Equal(t, 3.0, day.Total)

	week, err := s.Orders(dto.PeriodWeek)
	require.NoError(t, err)
	require.Len(t, week.Points, 7)
	assert.Equal(t, "Wed", week.Points[6].Label)
	assert.Equal(t, 8.0, week.Total)

	month, err := s.Revenue(dto.PeriodMonth)
	require.NoError(t, err)
	assert.Len(t, month.Points, 30)
	assert.Equal(t, "Mar 18", month.Points[29].Label)

	year, err := s.Orders(dto.PeriodYear)
	require.NoError(t, err)
	require.Len(t, year.Points, 12)
	assert.Equal(t, "Mar", year.Points[11].Label)
	assert.Equal(t, 42.0, year.Total)

	_, err = s.Revenue("decade")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestStats(t *testing.T) {
	s := seeded(t)

	st := s.Stats()
	assert.Equal(t, 1, st.ActiveDrivers)
	assert.Equal(t, 1, st.PendingDrivers)
	assert.Equal(t, 3, st.OrdersToday)
	assert.Equal(t, 8.35, st.RevenueToday)
	assert.Equal(t, 2, st.OpenTickets)
}

func TestPricingAndUploads(t *testing.T) {
	s := seeded(t)

	p := s.Pricing()
	p.SurgeMultiplier = 1.5
	got := s.UpdatePricing(p)
	assert.Equal(t, 1.5, s.Pricing().SurgeMultiplier)
	assert.Equal(t, testNow, got.UpdatedAt)

	res := s.SaveUpload("avatars", "me.png", []byte("img"))
	assert.Contains(t, res.Key, "avatars/")
	assert.EqualValues(t, 3, res.Size)

	data, err := s.Upload(res.Key)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	_, err = s.Upload("nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
