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

const WalkInCustomer = "Walk-in Customer"

type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var PaymentMethods = []PaymentMethod{
	{ID: "cash", Name: "Cash", Description: "Pay with cash"},
	{ID: "qris", Name: "QRIS", Description: "Scan QR code"},
	{ID: "debit", Name: "Debit Card", Description: "Pay with debit card"},
	{ID: "credit", Name: "Credit Card", Description: "Pay with credit card"},
	{ID: "transfer", Name: "Bank Transfer", Description: "Bank transfer payment"},
}

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrNoConfirmedOrder     = errors.New("no order has been confirmed yet")
)

func LookupPaymentMethod(id string) (PaymentMethod, bool) {
	for _, method := range PaymentMethods {
		if method.ID == id {
			return method, true
		}
	}
	return PaymentMethod{}, false
}

type CashierDraft struct {
	SelectedTables []tablemap.Table `json:"selectedTables"`
	CustomerName   string           `json:"customerName"`
	CartEntries    menu.Entries     `json:"cartItems"`
	PaymentMethod  string           `json:"paymentMethod"`
}

type CashierOrder struct {
	OrderID       string           `json:"orderId"`
	Tables        []tablemap.Table `json:"tables"`
	CustomerName  string           `json:"customerName"`
	Items         menu.Entries     `json:"items"`
	PaymentMethod string           `json:"paymentMethod"`
	Total         int64            `json:"total"`
	ConfirmedAt   time.Time        `json:"confirmedAt"`
}

type CashierReceipt struct {
	Order   CashierOrder `json:"order"`
	Message string       `json:"message"`
}

type CashierState struct {
	Progress       Progress        `json:"progress"`
	Draft          CashierDraft    `json:"draft"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
	CanContinue    bool            `json:"canContinue"`
	CanConfirm     bool            `json:"canConfirm"`
	Total          int64           `json:"total"`
}

type CashierOptions struct {
	ClientID  string
	Layout    *tablemap.Layout
	Catalog   *menu.Catalog
	MaxTables int
	Submitter queue.Submitter
	Logger    *zap.Logger
	Now       func() time.Time
}

// Cashier is the walk-in order flow: tables, menu, customer, payment.
type Cashier struct {
	mu        sync.Mutex
	machine   *Machine
	draft     CashierDraft
	floor     floor
	catalog   *menu.Catalog
	last      *CashierOrder
	clientID  string
	submitter queue.Submitter
	logger    *zap.Logger
	now       func() time.Time
}

func NewCashier(opts CashierOptions) *Cashier {
	c := &Cashier{
		floor:     newFloor(opts.Layout, opts.MaxTables),
		catalog:   opts.Catalog,
		clientID:  opts.ClientID,
		submitter: opts.Submitter,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if c.catalog == nil {
		c.catalog = menu.SampleCatalog()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.submitter == nil {
		c.submitter = queue.NewLogSubmitter(c.logger, nil)
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.draft = newCashierDraft()
	c.machine = NewMachine([]Step{StepTables, StepMenu, StepCustomer, StepPayment}, map[Step]Guard{
		StepMenu: func() string {
			if len(c.draft.SelectedTables) == 0 {
				return "select at least one table"
			}
			return ""
		},
		StepCustomer: func() string {
			if len(c.draft.CartEntries) == 0 {
				return "add at least one menu item"
			}
			return ""
		},
		StepPayment: func() string {
			if strings.TrimSpace(c.draft.CustomerName) == "" && len(c.draft.CartEntries) == 0 {
				return "enter a customer name or add items"
			}
			return ""
		},
	})
	return c
}

func newCashierDraft() CashierDraft {
	return CashierDraft{SelectedTables: []tablemap.Table{}, CartEntries: menu.Entries{}}
}

func (c *Cashier) State() CashierState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Cashier) stateLocked() CashierState {
	draft := c.draft
	draft.SelectedTables = c.floor.selection.Tables()
	draft.CartEntries = c.draft.CartEntries.Clone()
	return CashierState{
		Progress:       c.machine.Progress(),
		Draft:          draft,
		PaymentMethods: append([]PaymentMethod(nil), PaymentMethods...),
		CanContinue:    c.machine.CanAdvance(),
		CanConfirm:     c.machine.Current() == StepPayment && c.machine.Revalidate() == nil && c.confirmBlockerLocked() == "",
		Total:          c.draft.CartEntries.Total(),
	}
}

func (c *Cashier) Floor(search string) FloorView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.floor.view(search)
}

func (c *Cashier) ToggleTable(id string) (FloorView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.floor.toggle(id); err != nil {
		return FloorView{}, err
	}
	c.draft.SelectedTables = c.floor.selection.Tables()
	return c.floor.view(""), nil
}

func (c *Cashier) Viewport(cmd ViewportCommand) (FloorView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.floor.apply(cmd); err != nil {
		return FloorView{}, err
	}
	return c.floor.view(""), nil
}

func (c *Cashier) Menu(search, category string) MenuView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return menuView(c.catalog, c.draft.CartEntries, search, category)
}

func (c *Cashier) AddItem(menuID, notes string) (MenuView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := addEntry(c.catalog, c.draft.CartEntries, menuID, notes)
	if err != nil {
		return MenuView{}, err
	}
	c.draft.CartEntries = entries
	return menuView(c.catalog, entries, "", ""), nil
}

func (c *Cashier) SetItemQuantity(menuID string, quantity int) (MenuView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := setEntryQuantity(c.draft.CartEntries, menuID, quantity)
	if err != nil {
		return MenuView{}, err
	}
	c.draft.CartEntries = entries
	return menuView(c.catalog, entries, "", ""), nil
}

func (c *Cashier) SetCustomerName(name string) CashierState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.CustomerName = name
	return c.stateLocked()
}

func (c *Cashier) SetPaymentMethod(id string) (CashierState, error) {
	if _, ok := LookupPaymentMethod(id); !ok {
		return CashierState{}, ErrUnknownPaymentMethod
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.PaymentMethod = id
	return c.stateLocked(), nil
}

func (c *Cashier) Next() (CashierState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.machine.Next(); err != nil {
		return CashierState{}, err
	}
	return c.stateLocked(), nil
}

func (c *Cashier) Back() (CashierState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.machine.Back(); err != nil {
		return CashierState{}, err
	}
	return c.stateLocked(), nil
}

func (c *Cashier) GoTo(step Step) (CashierState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.machine.GoTo(step); err != nil {
		return CashierState{}, err
	}
	return c.stateLocked(), nil
}

func (c *Cashier) confirmBlockerLocked() string {
	if c.draft.PaymentMethod == "" {
		return "choose a payment method"
	}
	if len(c.draft.CartEntries) == 0 {
		return "add at least one menu item"
	}
	return ""
}

// Confirm submits the order and resets the flow to table selection. The
// confirmed order is kept for the receipt.
func (c *Cashier) Confirm(ctx context.Context) (CashierReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.machine.Current() != StepPayment {
		return CashierReceipt{}, &BlockedError{To: StepPayment, Reason: "choose payment before confirming"}
	}
	if err := c.machine.Revalidate(); err != nil {
		return CashierReceipt{}, err
	}
	if reason := c.confirmBlockerLocked(); reason != "" {
		return CashierReceipt{}, &BlockedError{To: StepPayment, Reason: reason}
	}

	now := c.now()
	customer := strings.TrimSpace(c.draft.CustomerName)
	if customer == "" {
		customer = WalkInCustomer
	}
	order := CashierOrder{
		OrderID:       fmt.Sprintf("WLF-%d", now.UnixMilli()),
		Tables:        c.floor.selection.Tables(),
		CustomerName:  customer,
		Items:         c.draft.CartEntries.Clone(),
		PaymentMethod: c.draft.PaymentMethod,
		Total:         c.draft.CartEntries.Total(),
		ConfirmedAt:   now,
	}
	err := c.submitter.Submit(ctx, queue.Envelope{
		Kind:     queue.KindCashierOrder,
		ID:       order.OrderID,
		ClientID: c.clientID,
		Payload:  order,
	})
	if err != nil {
		return CashierReceipt{}, err
	}

	c.last = &order
	c.draft = newCashierDraft()
	c.floor.reset()
	c.machine.Reset()
	return CashierReceipt{
		Order:   order,
		Message: fmt.Sprintf("Order confirmed successfully!\nOrder ID: %s\nTotal: %s", order.OrderID, menu.FormatRupiah(order.Total)),
	}, nil
}

func (c *Cashier) LastOrder() (CashierOrder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return CashierOrder{}, ErrNoConfirmedOrder
	}
	return *c.last, nil
}
