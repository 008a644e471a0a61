package submit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering-system/internal/cart"
	"ordering-system/internal/form"
	"ordering-system/internal/logger"
	"ordering-system/internal/models"
)

type fakePersistence struct {
	err   error
	calls int
	last  *models.Order
}

func (f *fakePersistence) SaveOrder(ctx context.Context, order *models.Order) error {
	f.calls++
	f.last = order
	if f.err == nil {
		order.Number = "ORD_20241023_001"
	}
	return f.err
}

type fakeForm struct {
	err   error
	calls int
	last  form.Submission
}

func (f *fakeForm) Post(ctx context.Context, sub form.Submission) error {
	f.calls++
	f.last = sub
	return f.err
}

type fakeNotifier struct {
	calls int
	last  *models.OrderSubmittedMessage
}

func (f *fakeNotifier) PublishOrderSubmitted(ctx context.Context, msg *models.OrderSubmittedMessage) error {
	f.calls++
	f.last = msg
	return nil
}

func testCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	require.NoError(t, c.SetQuantity(0, 0, 2)) // 原味蛋餅 x2 = 60
	require.NoError(t, c.SetQuantity(1, 1, 2)) // 鍋燒意麵 x2 = 100
	return c
}

// newTestCoordinator takes the Notifier interface so a literal nil stays an
// untyped nil and the coordinator's optional-notifier contract holds.
func newTestCoordinator(p *fakePersistence, f *fakeForm, n Notifier) *Coordinator {
	return NewCoordinator(p, f, n, logger.New("test"))
}

func TestSubmitSuccess(t *testing.T) {
	persistence := &fakePersistence{}
	formClient := &fakeForm{}
	notifier := &fakeNotifier{}
	co := newTestCoordinator(persistence, formClient, notifier)

	result, err := co.Submit(context.Background(), testCart(t), "蔡小姐", "0912345678", "req-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, result.Status)
	assert.Equal(t, 1, persistence.calls)
	assert.Equal(t, 1, formClient.calls)
	assert.Equal(t, 1, notifier.calls)

	require.NotNil(t, result.Order)
	assert.Equal(t, 160, result.Order.TotalPrice)
	assert.Equal(t, 144, result.Order.DiscountedTotal)
	assert.Equal(t, "原味蛋餅\n鍋燒意麵", result.Order.ItemNames)
	assert.Equal(t, "2\n2", result.Order.ItemQuantities)
	assert.Equal(t, "ORD_20241023_001", result.Order.Number)
	assert.False(t, result.Order.CreatedAt.IsZero())

	// The form receives the discounted total, not the raw one.
	assert.Equal(t, 144, formClient.last.DiscountedTotal)
	assert.Equal(t, "蔡小姐", formClient.last.CustomerName)
	assert.Equal(t, "0912345678", formClient.last.CustomerPhone)
}

func TestSubmitEmptyNameFailsBeforeAnyEffect(t *testing.T) {
	persistence := &fakePersistence{}
	formClient := &fakeForm{}
	co := newTestCoordinator(persistence, formClient, nil)

	_, err := co.Submit(context.Background(), testCart(t), "", "0912345678", "req-2")

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer_name", validationErr.Field)
	assert.Zero(t, persistence.calls, "persistence must not be invoked on validation failure")
	assert.Zero(t, formClient.calls, "form must not be invoked on validation failure")
}

func TestSubmitEmptyPhoneFailsBeforeAnyEffect(t *testing.T) {
	persistence := &fakePersistence{}
	formClient := &fakeForm{}
	co := newTestCoordinator(persistence, formClient, nil)

	_, err := co.Submit(context.Background(), testCart(t), "蔡小姐", "   ", "req-3")

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer_phone", validationErr.Field)
	assert.Zero(t, persistence.calls)
	assert.Zero(t, formClient.calls)
}

func TestSubmitFormFailureIsPartial(t *testing.T) {
	persistence := &fakePersistence{}
	formClient := &fakeForm{err: errors.New("form endpoint returned status 500")}
	notifier := &fakeNotifier{}
	co := newTestCoordinator(persistence, formClient, notifier)

	result, err := co.Submit(context.Background(), testCart(t), "蔡小姐", "0912345678", "req-4")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPartialFailure, result.Status)
	assert.Equal(t, models.EffectForm, result.Failed)
	assert.Error(t, result.FormErr)
	assert.NoError(t, result.PersistenceErr)
	assert.Equal(t, 1, persistence.calls, "persistence outcome is still reported, not rolled back")
	assert.Equal(t, 1, notifier.calls, "saved orders are still announced")
}

func TestSubmitPersistenceFailureIsPartial(t *testing.T) {
	persistence := &fakePersistence{err: errors.New("connection refused")}
	formClient := &fakeForm{}
	notifier := &fakeNotifier{}
	co := newTestCoordinator(persistence, formClient, notifier)

	result, err := co.Submit(context.Background(), testCart(t), "蔡小姐", "0912345678", "req-5")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPartialFailure, result.Status)
	assert.Equal(t, models.EffectPersistence, result.Failed)
	assert.Equal(t, 1, formClient.calls)
	assert.Zero(t, notifier.calls, "unsaved orders are not announced")
}

func TestSubmitBothFailing(t *testing.T) {
	persistence := &fakePersistence{err: errors.New("connection refused")}
	formClient := &fakeForm{err: errors.New("timeout")}
	co := newTestCoordinator(persistence, formClient, nil)

	result, err := co.Submit(context.Background(), testCart(t), "蔡小姐", "0912345678", "req-6")
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Error(t, result.PersistenceErr)
	assert.Error(t, result.FormErr)
}

func TestSubmitEmptyCart(t *testing.T) {
	persistence := &fakePersistence{}
	formClient := &fakeForm{}
	co := newTestCoordinator(persistence, formClient, nil)

	result, err := co.Submit(context.Background(), cart.New(), "蔡小姐", "0912345678", "req-7")
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, result.Status)
	assert.Zero(t, result.Order.TotalPrice)
	assert.Empty(t, result.Order.ItemNames)
	assert.Empty(t, result.Order.ItemQuantities)
}

func TestSubmitWithoutNotifier(t *testing.T) {
	persistence := &fakePersistence{}
	formClient := &fakeForm{}
	co := newTestCoordinator(persistence, formClient, nil)

	// Reaching the publish branch with no notifier configured must not panic.
	result, err := co.Submit(context.Background(), testCart(t), "蔡小姐", "0912345678", "req-8")
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, result.Status)
	assert.Equal(t, 1, persistence.calls)
	assert.Equal(t, 1, formClient.calls)
}

func TestDiscountedTotal(t *testing.T) {
	cases := []struct {
		total    int
		expected int
	}{
		{0, 0},
		{90, 90},
		{100, 100}, // not above the threshold, no discount
		{101, 91},
		{115, 104}, // 103.5 rounds up
		{120, 108},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, DiscountedTotal(tc.total), "total %d", tc.total)
	}
}
