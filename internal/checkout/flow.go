package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/cart"
	"github.com/S41T4M4/fc-front/internal/domain"
)

// Step is the checkout progression. Confirmation is terminal.
type Step string

const (
	StepInfo         Step = "INFO"
	StepPayment      Step = "PAYMENT"
	StepConfirmation Step = "CONFIRMATION"
)

func (s Step) IsTerminal() bool {
	return s == StepConfirmation
}

func (s Step) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentBoleto     PaymentMethod = "boleto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPix, PaymentCreditCard, PaymentBoleto:
		return true
	}
	return false
}

// PixDiscountRate is the display-side discount applied when paying with pix.
// The backend remains the pricing authority at finalize time.
const PixDiscountRate = 0.10

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrIllegalStep     = errors.New("illegal checkout step transition")
	ErrInvalidPayment  = errors.New("unknown payment method")
	ErrMissingBuyer    = errors.New("buyer name and a valid email are required")
	ErrAlreadyFinished = errors.New("checkout already completed")
)

// BuyerInfo is the contact data collected on the first step.
type BuyerInfo struct {
	Name  string
	Email string
}

// Flow drives one checkout attempt: info -> payment -> confirmation. It is
// created per purchase and clears the cart store on success.
type Flow struct {
	api  *api.Client
	cart *cart.Store

	mu         sync.Mutex
	step       Step
	info       BuyerInfo
	method     PaymentMethod
	finalizing bool
	order      *domain.Order
}

func NewFlow(client *api.Client, cartStore *cart.Store) *Flow {
	return &Flow{api: client, cart: cartStore, step: StepInfo}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// SubmitInfo validates the buyer contact data and advances to payment.
func (f *Flow) SubmitInfo(info BuyerInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepInfo {
		return ErrIllegalStep
	}
	if strings.TrimSpace(info.Name) == "" {
		return ErrMissingBuyer
	}
	if _, err := mail.ParseAddress(info.Email); err != nil {
		return ErrMissingBuyer
	}
	f.info = info
	f.step = StepPayment
	return nil
}

// SelectPayment picks the payment method on the payment step.
func (f *Flow) SelectPayment(method PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return ErrIllegalStep
	}
	if !method.Valid() {
		return ErrInvalidPayment
	}
	f.method = method
	return nil
}

// Discount is the pix discount on the current cart total, zero otherwise.
func (f *Flow) Discount() float64 {
	f.mu.Lock()
	method := f.method
	f.mu.Unlock()

	if method == PaymentPix {
		return f.cart.Total() * PixDiscountRate
	}
	return 0
}

// PayableTotal is the cart total minus any payment method discount.
func (f *Flow) PayableTotal() float64 {
	return f.cart.Total() - f.Discount()
}

// Finalize sends the purchase to the backend. On success the cart store is
// cleared and the flow reaches its terminal step.
func (f *Flow) Finalize(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	if f.step == StepConfirmation {
		f.mu.Unlock()
		return nil, ErrAlreadyFinished
	}
	if f.step != StepPayment || !f.method.Valid() || f.finalizing {
		f.mu.Unlock()
		return nil, ErrIllegalStep
	}
	// The lock is released across the network call; the flag keeps a second
	// Finalize from submitting the same purchase twice.
	f.finalizing = true
	info := f.info
	method := f.method
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.finalizing = false
		f.mu.Unlock()
	}()

	if f.cart.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	cartID := f.cart.CartID()
	if cartID == 0 {
		return nil, cart.ErrCartUnavailable
	}

	req := api.CheckoutRequest{
		IDCarrinho:      cartID,
		Email:           info.Email,
		MetodoPagamento: string(method),
	}
	if method == PaymentCreditCard {
		req.TransactionID = uuid.NewString()
	}

	resp, err := f.api.FinalizePurchase(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		if resp.Message != "" {
			return nil, fmt.Errorf("checkout failed: %s", resp.Message)
		}
		return nil, errors.New("checkout failed")
	}

	order := orderFromDTO(resp.Pedido)

	f.cart.Clear()

	f.mu.Lock()
	f.order = &order
	f.step = StepConfirmation
	f.mu.Unlock()

	return &order, nil
}

// Order returns the confirmation, present once the flow is terminal.
func (f *Flow) Order() (domain.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.order == nil {
		return domain.Order{}, false
	}
	return *f.order, true
}
