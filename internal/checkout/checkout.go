// Package checkout is the customer checkout form and the simulated payment
// step. The form is mirrored into the client's "orderData" key on every change
// so a reload restores it.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"wulf-order-services/internal/cart"
	"wulf-order-services/internal/localstore"
	"wulf-order-services/internal/queue"
	"wulf-order-services/internal/utils"

	"go.uber.org/zap"
)

// Messages shown to the customer.
const (
	PaymentSuccessMessage        = "Pembayaran berhasil! Pesanan Anda sedang diproses."
	NameRequiredMessage          = "Nama harus diisi!"
	PaymentMethodRequiredMessage = "Pilih metode pembayaran terlebih dahulu!"
)

type PaymentMethod string

const (
	PaymentQRIS  PaymentMethod = "qris"
	PaymentOther PaymentMethod = "other"
)

var (
	ErrNameRequired          = errors.New("name is required")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrOrderNotFound         = errors.New("no order data to pay for")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrPaymentInProgress     = errors.New("payment is already being processed")
)

type Form struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type OrderData struct {
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	Notes      string      `json:"notes"`
	Cart       []cart.Item `json:"cart"`
	TotalItems int         `json:"totalItems"`
	TotalPrice int64       `json:"totalPrice"`
	OrderDate  time.Time   `json:"orderDate"`
}

type View struct {
	Cart       []cart.Item `json:"cart"`
	TotalItems int         `json:"totalItems"`
	TotalPrice int64       `json:"totalPrice"`
	Form       Form        `json:"form"`
	Empty      bool        `json:"empty"`
}

type PaymentResult struct {
	OrderNumber   string        `json:"orderNumber"`
	TrackingToken string        `json:"trackingToken"`
	Method        PaymentMethod `json:"method"`
	TotalPrice    int64         `json:"totalPrice"`
	Message       string        `json:"message"`
}

type Options struct {
	ClientID     string
	Storage      localstore.Storage
	Cart         *cart.Store
	Submitter    queue.Submitter
	Logger       *zap.Logger
	PaymentDelay time.Duration
	TokenSecret  string
	TokenTTL     time.Duration
	Now          func() time.Time
}

type Flow struct {
	storage    localstore.Storage
	cart       *cart.Store
	submitter  queue.Submitter
	logger     *zap.Logger
	clientID   string
	delay      time.Duration
	secret     string
	ttl        time.Duration
	now        func() time.Time
	mu         sync.Mutex
	processing bool
}

func New(opts Options) *Flow {
	f := &Flow{
		storage:   opts.Storage,
		cart:      opts.Cart,
		submitter: opts.Submitter,
		logger:    opts.Logger,
		clientID:  opts.ClientID,
		delay:     opts.PaymentDelay,
		secret:    opts.TokenSecret,
		ttl:       opts.TokenTTL,
		now:       opts.Now,
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.submitter == nil {
		f.submitter = queue.NewLogSubmitter(f.logger, nil)
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// View reloads the cart from storage, as opening the checkout page does.
func (f *Flow) View(ctx context.Context) (View, error) {
	items, err := f.cart.Load(ctx)
	if err != nil {
		return View{}, err
	}
	form, err := f.Form(ctx)
	if err != nil {
		return View{}, err
	}
	totalItems, totalPrice := cart.Totals(items)
	return View{
		Cart:       items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		Form:       form,
		Empty:      len(items) == 0,
	}, nil
}

// Form restores the last mirrored form. Missing or malformed data is an empty form.
func (f *Flow) Form(ctx context.Context) (Form, error) {
	data, ok, err := f.readOrderData(ctx)
	if err != nil || !ok {
		return Form{}, err
	}
	return Form{Name: data.Name, Phone: data.Phone, Notes: data.Notes}, nil
}

// SaveDraft mirrors the form together with the current cart snapshot.
func (f *Flow) SaveDraft(ctx context.Context, form Form) (OrderData, error) {
	data := f.snapshot(form, f.cart.Items())
	if err := f.writeOrderData(ctx, data); err != nil {
		return OrderData{}, err
	}
	return data, nil
}

// Submit stores the final order data the payment page reads.
func (f *Flow) Submit(ctx context.Context, form Form) (OrderData, error) {
	if strings.TrimSpace(form.Name) == "" {
		return OrderData{}, ErrNameRequired
	}
	items := f.cart.Items()
	if len(items) == 0 {
		return OrderData{}, ErrEmptyCart
	}
	data := f.snapshot(form, items)
	if err := f.writeOrderData(ctx, data); err != nil {
		return OrderData{}, err
	}
	return data, nil
}

// Order is the data the payment page shows.
func (f *Flow) Order(ctx context.Context) (OrderData, error) {
	data, ok, err := f.readOrderData(ctx)
	if err != nil {
		return OrderData{}, err
	}
	if !ok {
		return OrderData{}, ErrOrderNotFound
	}
	return data, nil
}

// ConfirmPayment waits out the simulated processing delay, then clears the
// cart and order data. Once the wait starts it runs to completion even if ctx
// is cancelled.
func (f *Flow) ConfirmPayment(ctx context.Context, method PaymentMethod) (PaymentResult, error) {
	if method != PaymentQRIS && method != PaymentOther {
		return PaymentResult{}, ErrPaymentMethodRequired
	}
	order, err := f.Order(ctx)
	if err != nil {
		return PaymentResult{}, err
	}

	f.mu.Lock()
	if f.processing {
		f.mu.Unlock()
		return PaymentResult{}, ErrPaymentInProgress
	}
	f.processing = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.processing = false
		f.mu.Unlock()
	}()

	ctx = context.WithoutCancel(ctx)
	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		<-timer.C
	}

	if err := f.cart.Purge(ctx); err != nil {
		return PaymentResult{}, err
	}
	if err := f.storage.RemoveItem(ctx, localstore.KeyOrderData); err != nil {
		return PaymentResult{}, err
	}

	orderNumber := fmt.Sprintf("WLF-%d", f.now().UnixMilli())
	tracked := make([]utils.TrackedItem, 0, len(order.Cart))
	for _, item := range order.Cart {
		tracked = append(tracked, utils.TrackedItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}
	token, err := utils.CreateOrderTrackingToken(f.secret, utils.TrackingClaims{
		OrderNumber:  orderNumber,
		CustomerName: order.Name,
		TotalPrice:   order.TotalPrice,
		Items:        tracked,
	}, f.ttl)
	if err != nil {
		return PaymentResult{}, err
	}

	if err := f.submitter.Submit(ctx, queue.Envelope{
		Kind:     queue.KindPayment,
		ID:       orderNumber,
		ClientID: f.clientID,
		Payload: map[string]any{
			"orderNumber": orderNumber,
			"method":      method,
			"order":       order,
		},
	}); err != nil {
		f.logger.Warn("payment submission failed", zap.String("orderNumber", orderNumber), zap.Error(err))
	}

	return PaymentResult{
		OrderNumber:   orderNumber,
		TrackingToken: token,
		Method:        method,
		TotalPrice:    order.TotalPrice,
		Message:       PaymentSuccessMessage,
	}, nil
}

func (f *Flow) snapshot(form Form, items []cart.Item) OrderData {
	totalItems, totalPrice := cart.Totals(items)
	return OrderData{
		Name:       form.Name,
		Phone:      form.Phone,
		Notes:      form.Notes,
		Cart:       items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		OrderDate:  f.now().UTC(),
	}
}

func (f *Flow) readOrderData(ctx context.Context) (OrderData, bool, error) {
	raw, ok, err := f.storage.GetItem(ctx, localstore.KeyOrderData)
	if err != nil || !ok || raw == "" {
		return OrderData{}, false, err
	}
	var data OrderData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		f.logger.Warn("discarding malformed order data", zap.Error(err))
		return OrderData{}, false, nil
	}
	if data.Cart == nil {
		data.Cart = []cart.Item{}
	}
	return data, true, nil
}

func (f *Flow) writeOrderData(ctx context.Context, data OrderData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return f.storage.SetItem(ctx, localstore.KeyOrderData, string(raw))
}
