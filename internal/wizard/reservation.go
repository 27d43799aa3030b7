package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"wulf-order-services/internal/menu"
	"wulf-order-services/internal/queue"
	"wulf-order-services/internal/tablemap"

	"go.uber.org/zap"
)

const (
	DefaultPartySize = 2
	MinPartySize     = 1
	MaxPartySize     = 20
	DefaultTimeSlot  = "18:00"
)

// TimeSlots are the bookable hours, 10:00 through 21:00.
var TimeSlots = []string{
	"10:00", "11:00", "12:00", "13:00", "14:00", "15:00",
	"16:00", "17:00", "18:00", "19:00", "20:00", "21:00",
}

var (
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrDateInPast       = errors.New("date is in the past")
	ErrInvalidTimeSlot  = errors.New("time slot is not bookable")
	ErrInvalidPartySize = fmt.Errorf("party size must be between %d and %d", MinPartySize, MaxPartySize)
)

type CustomerInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	AltNumber       string `json:"altNumber"`
	SpecialRequests string `json:"specialRequests"`
}

type ReservationDraft struct {
	Date           string           `json:"date"`
	TimeSlot       string           `json:"timeSlot"`
	PartySize      int              `json:"partySize"`
	SelectedTables []tablemap.Table `json:"selectedTables"`
	CartEntries    menu.Entries     `json:"cartItems"`
	CustomerInfo   CustomerInfo     `json:"customerInfo"`
}

func (d ReservationDraft) TotalAmount() int64 {
	return d.CartEntries.Total()
}

type ReservationPayload struct {
	ReservationDraft
	ReservationID string `json:"reservationId"`
	TotalAmount   int64  `json:"totalAmount"`
}

type ReservationReceipt struct {
	ReservationID string             `json:"reservationId"`
	TotalAmount   int64              `json:"totalAmount"`
	Message       string             `json:"message"`
	Payload       ReservationPayload `json:"payload"`
}

type ReservationState struct {
	Progress    Progress         `json:"progress"`
	Draft       ReservationDraft `json:"draft"`
	TimeSlots   []string         `json:"timeSlots"`
	CanContinue bool             `json:"canContinue"`
	CanConfirm  bool             `json:"canConfirm"`
	TotalAmount int64            `json:"totalAmount"`
}

type ReservationOptions struct {
	ClientID  string
	Layout    *tablemap.Layout
	Catalog   *menu.Catalog
	MaxTables int
	Location  *time.Location
	Submitter queue.Submitter
	Logger    *zap.Logger
	Now       func() time.Time
}

// Reservation is the customer booking flow: date, tables, menu, review.
type Reservation struct {
	mu        sync.Mutex
	machine   *Machine
	draft     ReservationDraft
	floor     floor
	catalog   *menu.Catalog
	clientID  string
	location  *time.Location
	submitter queue.Submitter
	logger    *zap.Logger
	now       func() time.Time
}

func NewReservation(opts ReservationOptions) *Reservation {
	r := &Reservation{
		floor:     newFloor(opts.Layout, opts.MaxTables),
		catalog:   opts.Catalog,
		clientID:  opts.ClientID,
		location:  opts.Location,
		submitter: opts.Submitter,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if r.catalog == nil {
		r.catalog = menu.SampleCatalog()
	}
	if r.location == nil {
		r.location = time.UTC
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.submitter == nil {
		r.submitter = queue.NewLogSubmitter(r.logger, nil)
	}
	if r.now == nil {
		r.now = time.Now
	}
	r.draft = newReservationDraft()
	r.machine = NewMachine([]Step{StepDate, StepTables, StepMenu, StepReview}, map[Step]Guard{
		StepTables: func() string {
			if r.draft.Date == "" || r.draft.TimeSlot == "" {
				return "choose a date and time slot"
			}
			return ""
		},
		StepMenu: func() string {
			if len(r.draft.SelectedTables) == 0 {
				return "select at least one table"
			}
			return ""
		},
		StepReview: func() string {
			if len(r.draft.CartEntries) == 0 {
				return "add at least one menu item"
			}
			return ""
		},
	})
	return r
}

func newReservationDraft() ReservationDraft {
	return ReservationDraft{
		PartySize:      DefaultPartySize,
		SelectedTables: []tablemap.Table{},
		CartEntries:    menu.Entries{},
	}
}

func (r *Reservation) State() ReservationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Reservation) stateLocked() ReservationState {
	draft := r.draft
	draft.SelectedTables = r.floor.selection.Tables()
	draft.CartEntries = r.draft.CartEntries.Clone()
	return ReservationState{
		Progress:    r.machine.Progress(),
		Draft:       draft,
		TimeSlots:   append([]string(nil), TimeSlots...),
		CanContinue: r.machine.CanAdvance(),
		CanConfirm:  r.machine.Current() == StepReview && r.machine.Revalidate() == nil && r.confirmBlockerLocked() == "",
		TotalAmount: r.draft.TotalAmount(),
	}
}

// SetDateTime records the visit date and slot. An empty slot takes the
// default evening slot; dates before today in the restaurant's zone are refused.
func (r *Reservation) SetDateTime(date, slot string) (ReservationState, error) {
	date = strings.TrimSpace(date)
	slot = strings.TrimSpace(slot)
	if slot == "" {
		slot = DefaultTimeSlot
	}
	day, err := time.ParseInLocation("2006-01-02", date, r.location)
	if err != nil {
		return ReservationState{}, ErrInvalidDate
	}
	if !validSlot(slot) {
		return ReservationState{}, ErrInvalidTimeSlot
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().In(r.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.location)
	if day.Before(today) {
		return ReservationState{}, ErrDateInPast
	}
	r.draft.Date = date
	r.draft.TimeSlot = slot
	return r.stateLocked(), nil
}

func validSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func (r *Reservation) SetPartySize(n int) (ReservationState, error) {
	if n < MinPartySize || n > MaxPartySize {
		return ReservationState{}, ErrInvalidPartySize
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft.PartySize = n
	return r.stateLocked(), nil
}

func (r *Reservation) Floor(search string) FloorView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.floor.view(search)
}

func (r *Reservation) ToggleTable(id string) (FloorView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.floor.toggle(id); err != nil {
		return FloorView{}, err
	}
	r.draft.SelectedTables = r.floor.selection.Tables()
	return r.floor.view(""), nil
}

func (r *Reservation) Viewport(cmd ViewportCommand) (FloorView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.floor.apply(cmd); err != nil {
		return FloorView{}, err
	}
	return r.floor.view(""), nil
}

func (r *Reservation) Menu(search, category string) MenuView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return menuView(r.catalog, r.draft.CartEntries, search, category)
}

func (r *Reservation) AddItem(menuID, notes string) (MenuView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := addEntry(r.catalog, r.draft.CartEntries, menuID, notes)
	if err != nil {
		return MenuView{}, err
	}
	r.draft.CartEntries = entries
	return menuView(r.catalog, entries, "", ""), nil
}

func (r *Reservation) SetItemQuantity(menuID string, quantity int) (MenuView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := setEntryQuantity(r.draft.CartEntries, menuID, quantity)
	if err != nil {
		return MenuView{}, err
	}
	r.draft.CartEntries = entries
	return menuView(r.catalog, entries, "", ""), nil
}

func (r *Reservation) SetCustomer(info CustomerInfo) ReservationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft.CustomerInfo = info
	return r.stateLocked()
}

func (r *Reservation) Next() (ReservationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.machine.Next(); err != nil {
		return ReservationState{}, err
	}
	return r.stateLocked(), nil
}

func (r *Reservation) Back() (ReservationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.machine.Back(); err != nil {
		return ReservationState{}, err
	}
	return r.stateLocked(), nil
}

func (r *Reservation) GoTo(step Step) (ReservationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.machine.GoTo(step); err != nil {
		return ReservationState{}, err
	}
	return r.stateLocked(), nil
}

func (r *Reservation) confirmBlockerLocked() string {
	info := r.draft.CustomerInfo
	if strings.TrimSpace(info.Name) == "" || strings.TrimSpace(info.Phone) == "" {
		return "name and phone are required"
	}
	return ""
}

// Confirm submits the reviewed draft and starts the flow over. A blocked
// confirmation produces no payload.
func (r *Reservation) Confirm(ctx context.Context) (ReservationReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.machine.Current() != StepReview {
		return ReservationReceipt{}, &BlockedError{To: StepReview, Reason: "review the reservation before confirming"}
	}
	if err := r.machine.Revalidate(); err != nil {
		return ReservationReceipt{}, err
	}
	if reason := r.confirmBlockerLocked(); reason != "" {
		return ReservationReceipt{}, &BlockedError{To: StepReview, Reason: reason}
	}

	draft := r.draft
	draft.SelectedTables = r.floor.selection.Tables()
	draft.CartEntries = r.draft.CartEntries.Clone()
	payload := ReservationPayload{
		ReservationDraft: draft,
		ReservationID:    fmt.Sprintf("RES-%d", r.now().UnixMilli()),
		TotalAmount:      draft.TotalAmount(),
	}
	err := r.submitter.Submit(ctx, queue.Envelope{
		Kind:     queue.KindReservation,
		ID:       payload.ReservationID,
		ClientID: r.clientID,
		Payload:  payload,
	})
	if err != nil {
		return ReservationReceipt{}, err
	}

	r.resetLocked()
	return ReservationReceipt{
		ReservationID: payload.ReservationID,
		TotalAmount:   payload.TotalAmount,
		Message:       "Reservation submitted successfully!\nReservation ID: " + payload.ReservationID,
		Payload:       payload,
	}, nil
}

func (r *Reservation) resetLocked() {
	r.draft = newReservationDraft()
	r.floor.reset()
	r.machine.Reset()
}
