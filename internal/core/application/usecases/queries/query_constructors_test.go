package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	buyer, err := order.NewBuyer(kernel.NewUUID())
	require.NoError(t, err)

	q, err := queries.NewGetOrderQuery(kernel.NewUUID(), buyer)
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, buyer, q.Viewer())

	_, err = queries.NewGetOrderQuery(kernel.UUID{}, buyer)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOrderQuery(kernel.NewUUID(), order.Actor{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestListQueries_Limit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		want    int
		wantErr error
	}{
		{name: "zero means default", limit: 0, want: queries.DefaultListLimit},
		{name: "explicit", limit: 5, want: 5},
		{name: "max", limit: queries.MaxListLimit, want: queries.MaxListLimit},
		{name: "negative", limit: -1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "too large", limit: queries.MaxListLimit + 1, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buyerQuery, buyerErr := queries.NewListBuyerOrdersQuery(kernel.NewUUID(), tt.limit)
			sellerQuery, sellerErr := queries.NewListSellerOrdersQuery(kernel.NewUUID(), tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, buyerErr, tt.wantErr)
				require.ErrorIs(t, sellerErr, tt.wantErr)
				return
			}
			require.NoError(t, buyerErr)
			require.NoError(t, sellerErr)
			assert.Equal(t, tt.want, buyerQuery.Limit())
			assert.Equal(t, tt.want, sellerQuery.Limit())
		})
	}
}

func TestListQueries_RequireOwner(t *testing.T) {
	_, err := queries.NewListBuyerOrdersQuery(kernel.UUID{}, 10)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewListSellerOrdersQuery(kernel.UUID{}, 10)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
