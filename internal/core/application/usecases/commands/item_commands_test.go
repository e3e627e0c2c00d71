package commands_test

import (
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessItemCommand(t *testing.T) {
	p := newParties(t)
	orderID, itemID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewProcessItemCommand(orderID, itemID, p.seller)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, itemID, cmd.ItemID())
	assert.Equal(t, p.seller, cmd.Actor())

	_, err = commands.NewProcessItemCommand(kernel.UUID{}, kernel.UUID{}, p.seller)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "orderId")
	assert.Contains(t, err.Error(), "itemId")

	_, err = commands.NewProcessItemCommand(orderID, itemID, order.Actor{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewShipItemCommand(t *testing.T) {
	p := newParties(t)
	orderID, itemID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewShipItemCommand(orderID, itemID, p.seller, " J&T ", " JT-1 ", false)
	require.NoError(t, err)
	assert.Equal(t, "J&T", cmd.Shipment().Courier())
	assert.Equal(t, "JT-1", cmd.Shipment().TrackingNumber())
	assert.False(t, cmd.Shipment().ForPickUp())

	pickUp, err := commands.NewShipItemCommand(orderID, itemID, p.seller, "", "", true)
	require.NoError(t, err)
	assert.True(t, pickUp.Shipment().ForPickUp())

	_, err = commands.NewShipItemCommand(orderID, itemID, p.seller, "", "", false)
	require.Error(t, err)
}

func TestNewCancelItemCommand(t *testing.T) {
	p := newParties(t)

	cmd, err := commands.NewCancelItemCommand(kernel.NewUUID(), kernel.NewUUID(), p.buyer, "  changed my mind ")
	require.NoError(t, err)
	assert.Equal(t, "changed my mind", cmd.Reason())

	_, err = commands.NewCancelItemCommand(kernel.NewUUID(), kernel.NewUUID(), p.buyer, strings.Repeat("x", 501))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewRequestRefundCommand(t *testing.T) {
	p := newParties(t)

	cmd, err := commands.NewRequestRefundCommand(kernel.NewUUID(), kernel.NewUUID(), p.buyer, "broken on arrival")
	require.NoError(t, err)
	assert.Equal(t, "broken on arrival", cmd.Reason())

	_, err = commands.NewRequestRefundCommand(kernel.NewUUID(), kernel.NewUUID(), p.buyer, strings.Repeat("x", 501))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewResolveRefundCommand(t *testing.T) {
	p := newParties(t)

	cmd, err := commands.NewResolveRefundCommand(kernel.NewUUID(), kernel.NewUUID(), p.seller, true)
	require.NoError(t, err)
	assert.True(t, cmd.Approve())
}

func TestItemCommands_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.ProcessItemCommand{}.Validate(), commands.ErrProcessItemCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ShipItemCommand{}.Validate(), commands.ErrShipItemCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CancelItemCommand{}.Validate(), commands.ErrCancelItemCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ConfirmDeliveryCommand{}.Validate(), commands.ErrConfirmDeliveryCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RequestRefundCommand{}.Validate(), commands.ErrRequestRefundCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ResolveRefundCommand{}.Validate(), commands.ErrResolveRefundCommandIsNotConstructed)
	assert.ErrorIs(t, commands.AutoDeliverCommand{}.Validate(), commands.ErrAutoDeliverCommandIsNotConstructed)
}

func TestNewAutoDeliverCommand(t *testing.T) {
	cmd, err := commands.NewAutoDeliverCommand(t0)
	require.NoError(t, err)
	assert.Equal(t, t0, cmd.Now())

	_, err = commands.NewAutoDeliverCommand(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
