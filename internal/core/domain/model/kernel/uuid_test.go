package kernel_test

import (
	"encoding/json"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderIDText = "550e8400-e29b-41d4-a716-446655440000"

func TestUUID_ZeroValueIsNotConstructed(t *testing.T) {
	var id kernel.UUID

	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.NoError(t, kernel.NewUUID().Validate())
	assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
}

func TestUUIDFromString_AcceptedForms(t *testing.T) {
	for _, text := range []string{
		orderIDText,
		"{" + orderIDText + "}",
		"urn:uuid:" + orderIDText,
		"550e8400e29b41d4a716446655440000",
	} {
		id, err := kernel.UUIDFromString(text)
		require.NoError(t, err, text)
		assert.Equal(t, orderIDText, id.String(), text)
	}
}

func TestUUIDFromString_Rejects(t *testing.T) {
	for _, text := range []string{"", "order-1", orderIDText + "0"} {
		_, err := kernel.UUIDFromString(text)
		assert.Error(t, err, text)
	}
}

func TestUUIDFromBytes(t *testing.T) {
	raw := uuid.MustParse(orderIDText)

	id, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.Equal(t, orderIDText, id.String())

	_, err = kernel.UUIDFromBytes(raw[:8])
	assert.Error(t, err)

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed, "stored nil ids are not valid references")
}

func TestUUIDFromUUID(t *testing.T) {
	raw := uuid.New()

	id, err := kernel.UUIDFromUUID(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())

	_, err = kernel.UUIDFromUUID(uuid.Nil)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_BytesIsACopy(t *testing.T) {
	id := kernel.NewUUID()
	before := id.String()

	b := id.Bytes()
	b[0] ^= 0xFF

	assert.Equal(t, before, id.String())
}

func TestUUID_JSON(t *testing.T) {
	type notification struct {
		OrderID kernel.UUID `json:"orderId"`
	}
	id, err := kernel.UUIDFromString(orderIDText)
	require.NoError(t, err)

	data, err := json.Marshal(notification{OrderID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"`+orderIDText+`"}`, string(data))

	var decoded notification
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.OrderID.IsEqual(id))

	assert.Error(t, json.Unmarshal([]byte(`{"orderId":"nope"}`), &decoded))
}
