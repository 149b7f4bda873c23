package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/cart"
	"github.com/S41T4M4/fc-front/internal/storage"
	"github.com/S41T4M4/fc-front/internal/stubserver"
)

func newCheckoutFixture(t *testing.T) (*Flow, *cart.Store, *storage.MemoryStore) {
	t.Helper()

	backend := stubserver.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL + "/api")
	st := storage.NewMemoryStore()
	cartStore := cart.New(client, st)
	return NewFlow(client, cartStore), cartStore, st
}

func TestStepProgression(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	assert.Equal(t, StepInfo, flow.Step())
	assert.False(t, flow.Step().IsTerminal())

	// Payment cannot be selected before the info step is done.
	assert.ErrorIs(t, flow.SelectPayment(PaymentPix), ErrIllegalStep)

	require.NoError(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}))
	assert.Equal(t, StepPayment, flow.Step())

	// Info cannot be re-submitted once past it.
	assert.ErrorIs(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}), ErrIllegalStep)

	require.NoError(t, flow.SelectPayment(PaymentBoleto))
}

func TestSubmitInfoValidation(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	assert.ErrorIs(t, flow.SubmitInfo(BuyerInfo{Name: "", Email: "ana@x.com"}), ErrMissingBuyer)
	assert.ErrorIs(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "not-an-email"}), ErrMissingBuyer)
	assert.Equal(t, StepInfo, flow.Step())
}

func TestSelectPaymentValidation(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)
	require.NoError(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}))

	assert.ErrorIs(t, flow.SelectPayment(PaymentMethod("bitcoin")), ErrInvalidPayment)
}

func TestPixDiscount(t *testing.T) {
	flow, cartStore, _ := newCheckoutFixture(t)

	require.NoError(t, cartStore.AddItem(context.Background(), 1, 1, 1)) // 49.90
	require.NoError(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}))

	require.NoError(t, flow.SelectPayment(PaymentBoleto))
	assert.Zero(t, flow.Discount())
	assert.InDelta(t, 49.90, flow.PayableTotal(), 0.001)

	require.NoError(t, flow.SelectPayment(PaymentPix))
	assert.InDelta(t, 4.99, flow.Discount(), 0.001)
	assert.InDelta(t, 44.91, flow.PayableTotal(), 0.001)
}

func TestFinalizeClearsCart(t *testing.T) {
	flow, cartStore, st := newCheckoutFixture(t)

	require.NoError(t, cartStore.AddItem(context.Background(), 1, 1, 1))
	require.NoError(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}))
	require.NoError(t, flow.SelectPayment(PaymentPix))

	order, err := flow.Finalize(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 49.90, order.Total, 0.001)
	assert.Equal(t, "CONFIRMED", order.Status)
	assert.Equal(t, StepConfirmation, flow.Step())
	assert.True(t, flow.Step().IsTerminal())

	confirmed, ok := flow.Order()
	require.True(t, ok)
	assert.Equal(t, order.ID, confirmed.ID)

	// The cart is gone, in memory and in durable storage.
	assert.Equal(t, cart.StateEmpty, cartStore.State())
	assert.Zero(t, cartStore.ItemCount())
	for _, key := range []string{storage.KeyCart, storage.KeyCartID} {
		_, present, err := st.Get(key)
		require.NoError(t, err)
		assert.False(t, present)
	}

	_, err = flow.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestFinalizeRejectsConcurrentAttempt(t *testing.T) {
	backend := stubserver.New()
	inner := backend.Handler()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/Checkout/finalizar-compra" {
			once.Do(func() { close(entered) })
			<-release
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL + "/api")
	st := storage.NewMemoryStore()
	cartStore := cart.New(client, st)
	flow := NewFlow(client, cartStore)

	require.NoError(t, cartStore.AddItem(context.Background(), 1, 1, 1))
	require.NoError(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}))
	require.NoError(t, flow.SelectPayment(PaymentPix))

	done := make(chan error, 1)
	go func() {
		_, err := flow.Finalize(context.Background())
		done <- err
	}()

	// Wait until the first finalize is in flight, then race a second one.
	<-entered
	_, err := flow.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrIllegalStep)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StepConfirmation, flow.Step())
}

func TestFinalizeGuards(t *testing.T) {
	flow, _, _ := newCheckoutFixture(t)

	// Finalizing before reaching the payment step is illegal.
	_, err := flow.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrIllegalStep)

	require.NoError(t, flow.SubmitInfo(BuyerInfo{Name: "Ana", Email: "ana@x.com"}))

	// Payment step without a chosen method is still illegal.
	_, err = flow.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrIllegalStep)

	require.NoError(t, flow.SelectPayment(PaymentPix))

	// An empty cart cannot be checked out.
	_, err = flow.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}
