package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wulf-order-services/internal/queue"
	"wulf-order-services/internal/tablemap"

	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	envelopes []queue.Envelope
	err       error
}

func (r *recordingSubmitter) Submit(_ context.Context, env queue.Envelope) error {
	if r.err != nil {
		return r.err
	}
	r.envelopes = append(r.envelopes, env)
	return nil
}

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestReservation(sub queue.Submitter) *Reservation {
	return NewReservation(ReservationOptions{
		ClientID:  "tab-1",
		MaxTables: 2,
		Submitter: sub,
		Now:       func() time.Time { return fixedNow },
	})
}

func TestMachineGuards(t *testing.T) {
	ready := map[Step]bool{}
	guard := func(step Step) Guard {
		return func() string {
			if !ready[step] {
				return "not ready"
			}
			return ""
		}
	}
	m := NewMachine([]Step{StepDate, StepTables, StepMenu}, map[Step]Guard{
		StepTables: guard(StepTables),
		StepMenu:   guard(StepMenu),
	})

	if err := m.Next(); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("expected ErrStepBlocked, got %v", err)
	}
	if m.Current() != StepDate {
		t.Fatalf("expected to stay on date, got %s", m.Current())
	}

	ready[StepTables] = true
	if err := m.GoTo(StepMenu); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("expected GoTo to check every intermediate guard, got %v", err)
	}
	if m.Current() != StepDate {
		t.Fatalf("blocked GoTo must not move, got %s", m.Current())
	}

	ready[StepMenu] = true
	require.NoError(t, m.GoTo(StepMenu))
	require.ErrorIs(t, m.Next(), ErrNoNextStep)

	progress := m.Progress()
	require.Equal(t, 2, progress.Index)
	require.Equal(t, 100, progress.Percent)
	require.True(t, progress.Steps[0].Completed)
	require.True(t, progress.Steps[2].Current)

	ready[StepTables] = false
	require.NoError(t, m.GoTo(StepDate), "moving back ignores guards")
	require.ErrorIs(t, m.Back(), ErrNoPrevStep)
	require.ErrorIs(t, m.GoTo("dessert"), ErrUnknownStep)
}

func TestReservationCannotReachMenuWithoutDateAndSlot(t *testing.T) {
	r := newTestReservation(&recordingSubmitter{})

	if _, err := r.Next(); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("expected tables step to be blocked, got %v", err)
	}
	if _, err := r.GoTo(StepMenu); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("expected menu step to be blocked, got %v", err)
	}
	if got := r.State().Progress.Current; got != StepDate {
		t.Fatalf("expected date step, got %s", got)
	}
}

func TestReservationDateValidation(t *testing.T) {
	r := newTestReservation(&recordingSubmitter{})

	cases := []struct {
		name string
		date string
		slot string
		want error
	}{
		{name: "bad format", date: "10/03/2025", slot: "18:00", want: ErrInvalidDate},
		{name: "yesterday", date: "2025-03-09", slot: "18:00", want: ErrDateInPast},
		{name: "off-hours slot", date: "2025-03-10", slot: "22:00", want: ErrInvalidTimeSlot},
		{name: "half hour slot", date: "2025-03-10", slot: "18:30", want: ErrInvalidTimeSlot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := r.SetDateTime(tc.date, tc.slot); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	state, err := r.SetDateTime("2025-03-10", "")
	require.NoError(t, err)
	require.Equal(t, DefaultTimeSlot, state.Draft.TimeSlot)
	require.True(t, state.CanContinue)

	_, err = r.SetPartySize(0)
	require.ErrorIs(t, err, ErrInvalidPartySize)
	state, err = r.SetPartySize(6)
	require.NoError(t, err)
	require.Equal(t, 6, state.Draft.PartySize)
}

func walkReservationToReview(t *testing.T, r *Reservation) {
	t.Helper()
	_, err := r.SetDateTime("2025-03-12", "19:00")
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.ToggleTable("TBL-001")
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.AddItem("MENU-001", "")
	require.NoError(t, err)
	_, err = r.AddItem("MENU-003", "less sugar")
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
}

func TestReservationConfirmRequiresNameAndPhone(t *testing.T) {
	sub := &recordingSubmitter{}
	r := newTestReservation(sub)
	walkReservationToReview(t, r)

	r.SetCustomer(CustomerInfo{Name: "   ", Phone: "0812"})
	state := r.State()
	if state.CanConfirm {
		t.Fatalf("expected confirm to be disabled")
	}
	if _, err := r.Confirm(context.Background()); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("expected ErrStepBlocked, got %v", err)
	}
	if len(sub.envelopes) != 0 {
		t.Fatalf("expected no payload, got %d", len(sub.envelopes))
	}
	if r.State().Progress.Current != StepReview {
		t.Fatalf("blocked confirm must keep the review step")
	}
}

func TestReservationConfirmSubmitsAndResets(t *testing.T) {
	sub := &recordingSubmitter{}
	r := newTestReservation(sub)
	walkReservationToReview(t, r)
	r.SetCustomer(CustomerInfo{Name: "Sari", Phone: "08123456789", SpecialRequests: "window seat"})

	receipt, err := r.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, "RES-1741599000000", receipt.ReservationID)
	require.Equal(t, int64(33000), receipt.TotalAmount)
	require.True(t, strings.Contains(receipt.Message, receipt.ReservationID))

	require.Len(t, sub.envelopes, 1)
	env := sub.envelopes[0]
	require.Equal(t, queue.KindReservation, env.Kind)
	require.Equal(t, "tab-1", env.ClientID)
	payload := env.Payload.(ReservationPayload)
	require.Len(t, payload.SelectedTables, 1)
	require.Equal(t, "window seat", payload.CustomerInfo.SpecialRequests)

	state := r.State()
	require.Equal(t, StepDate, state.Progress.Current)
	require.Empty(t, state.Draft.CartEntries)
	require.Empty(t, state.Draft.SelectedTables)
	require.Equal(t, DefaultPartySize, state.Draft.PartySize)
}

func TestReservationConfirmRechecksEarlierSteps(t *testing.T) {
	sub := &recordingSubmitter{}
	r := newTestReservation(sub)
	walkReservationToReview(t, r)
	r.SetCustomer(CustomerInfo{Name: "Sari", Phone: "0812"})

	_, err := r.ToggleTable("TBL-001")
	require.NoError(t, err)
	require.False(t, r.State().CanConfirm, "no table left")

	_, err = r.Confirm(context.Background())
	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	require.Equal(t, StepMenu, blocked.To)

	_, err = r.ToggleTable("TBL-001")
	require.NoError(t, err)
	_, err = r.SetItemQuantity("MENU-001", 0)
	require.NoError(t, err)
	_, err = r.SetItemQuantity("MENU-003", 0)
	require.NoError(t, err)
	require.False(t, r.State().CanConfirm, "no items left")

	_, err = r.Confirm(context.Background())
	require.ErrorAs(t, err, &blocked)
	require.Equal(t, StepReview, blocked.To)
	require.Empty(t, sub.envelopes)
}

func TestReservationSubmitFailureKeepsDraft(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("broker down")}
	r := newTestReservation(sub)
	walkReservationToReview(t, r)
	r.SetCustomer(CustomerInfo{Name: "Sari", Phone: "0812"})

	if _, err := r.Confirm(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}
	if got := r.State().Draft.CartEntries.Count(); got != 2 {
		t.Fatalf("expected draft to survive, got %d units", got)
	}
}

func TestReservationTableCap(t *testing.T) {
	r := newTestReservation(&recordingSubmitter{})

	_, err := r.ToggleTable("TBL-001")
	require.NoError(t, err)
	_, err = r.ToggleTable("TBL-002")
	require.NoError(t, err)

	_, err = r.ToggleTable("TBL-003")
	var maxErr *tablemap.MaxSelectionError
	require.ErrorAs(t, err, &maxErr)
	require.Equal(t, 2, maxErr.Max)

	_, err = r.ToggleTable("TBL-005")
	require.ErrorIs(t, err, tablemap.ErrTableUnavailable)
	_, err = r.ToggleTable("TBL-999")
	require.ErrorIs(t, err, ErrTableNotFound)

	view := r.Floor("")
	require.Equal(t, 6, view.SelectedSeats)
	require.Len(t, view.Selected, 2)
}

func TestReservationViewport(t *testing.T) {
	r := newTestReservation(&recordingSubmitter{})

	view, err := r.Viewport(ViewportCommand{Zoom: "in", DX: 12, DY: 8})
	require.NoError(t, err)
	require.Equal(t, "translate(12px, 8px) scale(1.2)", view.Transform)

	view, err = r.Viewport(ViewportCommand{Mode: tablemap.ViewGrid, Reset: true})
	require.NoError(t, err)
	require.Equal(t, tablemap.ViewGrid, view.Mode)
	require.Equal(t, "translate(0px, 0px) scale(1)", view.Transform)
}

func newTestCashier(sub queue.Submitter) *Cashier {
	return NewCashier(CashierOptions{
		ClientID:  "till-1",
		MaxTables: 4,
		Submitter: sub,
		Now:       func() time.Time { return fixedNow },
	})
}

func TestCashierGuards(t *testing.T) {
	c := newTestCashier(&recordingSubmitter{})

	_, err := c.Next()
	require.ErrorIs(t, err, ErrStepBlocked)

	_, err = c.ToggleTable("TBL-002")
	require.NoError(t, err)
	_, err = c.Next()
	require.NoError(t, err)

	_, err = c.Next()
	require.ErrorIs(t, err, ErrStepBlocked, "customer step needs items")

	_, err = c.AddItem("MENU-002", "")
	require.NoError(t, err)
	_, err = c.GoTo(StepPayment)
	require.NoError(t, err)

	state := c.State()
	require.False(t, state.CanConfirm, "payment method still missing")
	_, err = c.Confirm(context.Background())
	require.ErrorIs(t, err, ErrStepBlocked)

	_, err = c.SetPaymentMethod("bitcoin")
	require.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestCashierConfirmDefaultsWalkInAndResets(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newTestCashier(sub)

	_, _ = c.ToggleTable("TBL-003")
	_, _ = c.Next()
	_, _ = c.AddItem("MENU-001", "")
	_, _ = c.AddItem("MENU-001", "extra pedas")
	_, _ = c.Next()
	_, _ = c.Next()
	_, err := c.SetPaymentMethod("qris")
	require.NoError(t, err)

	_, err = c.LastOrder()
	require.ErrorIs(t, err, ErrNoConfirmedOrder)

	receipt, err := c.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, WalkInCustomer, receipt.Order.CustomerName)
	require.Equal(t, int64(50000), receipt.Order.Total)
	require.Equal(t, "WLF-1741599000000", receipt.Order.OrderID)
	require.Equal(t, "Order confirmed successfully!\nOrder ID: WLF-1741599000000\nTotal: Rp 50.000", receipt.Message)
	require.Equal(t, "extra pedas", receipt.Order.Items[0].Notes)

	require.Len(t, sub.envelopes, 1)
	require.Equal(t, queue.KindCashierOrder, sub.envelopes[0].Kind)

	state := c.State()
	require.Equal(t, StepTables, state.Progress.Current)
	require.Empty(t, state.Draft.PaymentMethod)
	require.Empty(t, state.Draft.SelectedTables)

	last, err := c.LastOrder()
	require.NoError(t, err)
	require.Equal(t, receipt.Order.OrderID, last.OrderID)
}

func TestCashierConfirmRechecksTables(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newTestCashier(sub)

	_, _ = c.ToggleTable("TBL-003")
	_, _ = c.Next()
	_, _ = c.AddItem("MENU-001", "")
	_, _ = c.Next()
	_, _ = c.Next()
	_, err := c.SetPaymentMethod("cash")
	require.NoError(t, err)
	require.True(t, c.State().CanConfirm)

	_, err = c.ToggleTable("TBL-003")
	require.NoError(t, err)
	require.False(t, c.State().CanConfirm)

	_, err = c.Confirm(context.Background())
	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	require.Equal(t, StepMenu, blocked.To)
	require.Empty(t, sub.envelopes)
}

func TestCashierBlankNameIsWalkIn(t *testing.T) {
	c := newTestCashier(&recordingSubmitter{})

	_, _ = c.ToggleTable("TBL-001")
	_, _ = c.Next()
	_, _ = c.AddItem("MENU-002", "")
	_, _ = c.Next()
	c.SetCustomerName("   ")
	_, _ = c.Next()
	_, _ = c.SetPaymentMethod("debit")

	receipt, err := c.Confirm(context.Background())
	require.NoError(t, err)
	require.Equal(t, WalkInCustomer, receipt.Order.CustomerName)
}
