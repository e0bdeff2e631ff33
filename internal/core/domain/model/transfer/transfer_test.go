package transfer_test

import (
	"testing"
	"time"

	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderID = kernel.MustNewOrderID("order_1")
	alice   = kernel.MustNewAccountID("alice.near")
	now     = time.Date(2022, 8, 30, 10, 0, 0, 0, time.UTC)
)

func TestNewTransfer(t *testing.T) {
	t.Run("should create pending transfer", func(t *testing.T) {
		tr, err := transfer.NewTransfer(orderID, alice, 500, transfer.Overpayment, now)

		require.NoError(t, err)
		require.NoError(t, tr.Validate())
		require.NoError(t, tr.ID().Validate())
		assert.True(t, tr.OrderID().IsEqual(orderID))
		assert.True(t, tr.Recipient().IsEqual(alice))
		assert.Equal(t, kernel.Amount(500), tr.Amount())
		assert.Equal(t, transfer.Overpayment, tr.Kind())
		assert.Equal(t, transfer.Pending, tr.Status())
		assert.Equal(t, now, tr.CreatedAt())
		assert.Nil(t, tr.DispatchedAt())
	})

	t.Run("should reject zero amount", func(t *testing.T) {
		tr, err := transfer.NewTransfer(orderID, alice, 0, transfer.Refund, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, tr)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should reject unknown kind", func(t *testing.T) {
		_, err := transfer.NewTransfer(orderID, alice, 1, transfer.UnknownKind, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid transfer kind")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := transfer.NewTransfer(kernel.OrderID{}, kernel.AccountID{}, 0, transfer.Refund, time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order ID must be created")
		assert.Contains(t, err.Error(), "account ID must be created")
		assert.Contains(t, err.Error(), "amount")
		assert.Contains(t, err.Error(), "created at")
	})

	t.Run("should issue unique identifiers", func(t *testing.T) {
		t1, _ := transfer.NewTransfer(orderID, alice, 1, transfer.Refund, now)
		t2, _ := transfer.NewTransfer(orderID, alice, 1, transfer.Refund, now)

		assert.False(t, t1.ID().IsEqual(t2.ID()))
	})
}

func TestRestoreTransfer(t *testing.T) {
	dispatchedAt := now.Add(time.Minute)

	t.Run("should restore dispatched transfer", func(t *testing.T) {
		id := kernel.NewUUID()

		tr, err := transfer.RestoreTransfer(id, orderID, alice, 1000, transfer.Refund, transfer.Dispatched, now, &dispatchedAt)

		require.NoError(t, err)
		assert.True(t, tr.ID().IsEqual(id))
		assert.Equal(t, transfer.Dispatched, tr.Status())
		require.NotNil(t, tr.DispatchedAt())
		assert.Equal(t, dispatchedAt, *tr.DispatchedAt())
	})

	t.Run("should reject dispatched transfer without dispatch time", func(t *testing.T) {
		_, err := transfer.RestoreTransfer(kernel.NewUUID(), orderID, alice, 1000, transfer.Refund, transfer.Dispatched, now, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject pending transfer with dispatch time", func(t *testing.T) {
		_, err := transfer.RestoreTransfer(kernel.NewUUID(), orderID, alice, 1000, transfer.Refund, transfer.Pending, now, &dispatchedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero identifier", func(t *testing.T) {
		_, err := transfer.RestoreTransfer(kernel.UUID{}, orderID, alice, 1000, transfer.Refund, transfer.Pending, now, nil)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestTransfer_MarkDispatched(t *testing.T) {
	t.Run("should mark pending transfer dispatched", func(t *testing.T) {
		tr, _ := transfer.NewTransfer(orderID, alice, 1000, transfer.Refund, now)
		at := now.Add(2 * time.Second)

		err := tr.MarkDispatched(at)

		require.NoError(t, err)
		assert.Equal(t, transfer.Dispatched, tr.Status())
		require.NotNil(t, tr.DispatchedAt())
		assert.Equal(t, at, *tr.DispatchedAt())
	})

	t.Run("should reject dispatching twice", func(t *testing.T) {
		tr, _ := transfer.NewTransfer(orderID, alice, 1000, transfer.Refund, now)
		require.NoError(t, tr.MarkDispatched(now))

		err := tr.MarkDispatched(now.Add(time.Second))

		require.ErrorIs(t, err, transfer.ErrAlreadyDispatched)
		assert.Equal(t, now, *tr.DispatchedAt())
	})

	t.Run("should require a dispatch time", func(t *testing.T) {
		tr, _ := transfer.NewTransfer(orderID, alice, 1000, transfer.Refund, now)

		err := tr.MarkDispatched(time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, transfer.Pending, tr.Status())
	})
}

func TestTransfer_Validate(t *testing.T) {
	var tr *transfer.Transfer
	assert.Equal(t, transfer.ErrTransferIsNotConstructed, tr.Validate())

	var zero transfer.Transfer
	assert.Equal(t, transfer.ErrTransferIsNotConstructed, zero.Validate())
}

func TestKindAndStatus_String(t *testing.T) {
	assert.Equal(t, "Overpayment", transfer.Overpayment.String())
	assert.Equal(t, "Refund", transfer.Refund.String())
	assert.Equal(t, "Unknown", transfer.UnknownKind.String())
	assert.Equal(t, "Pending", transfer.Pending.String())
	assert.Equal(t, "Dispatched", transfer.Dispatched.String())
	assert.Equal(t, "Unknown", transfer.UnknownStatus.String())
}
