package commandv1

import (
	"testing"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		cmd   Command
		codes []errors.ErrorCode
	}{
		{
			name: "valid enter",
			cmd:  Command{Type: TypeEnter, OrderID: "B1", Side: orderbookv1.SideBuy, Price: 100, Size: 5},
		},
		{
			name: "valid cancel without side",
			cmd:  Command{Type: TypeCancel, OrderID: "B1", Size: 0},
		},
		{
			name:  "enter with bad side",
			cmd:   Command{Type: TypeEnter, OrderID: "B1", Side: "long", Size: 5},
			codes: []errors.ErrorCode{errors.CommandInvalidSideError},
		},
		{
			name:  "unknown type and missing id",
			cmd:   Command{Type: "amend"},
			codes: []errors.ErrorCode{errors.CommandInvalidTypeError, errors.CommandInvalidOrderIDError},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.Validate()
			if len(tc.codes) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			baseErr, ok := err.(*errors.BaseError)
			require.True(t, ok)
			assert.Len(t, baseErr.GetDetails(), len(tc.codes))
			for _, code := range tc.codes {
				assert.True(t, errors.ErrorCodeEquals(err, code), code)
			}
		})
	}
}

type recordingBook struct {
	orderbookv1.Orderbook
	calls []string
}

func (b *recordingBook) Enter(orderID string, side orderbookv1.Side, price, size int64) orderbookv1.Status {
	b.calls = append(b.calls, "enter:"+orderID)
	return orderbookv1.StatusApplied
}

func (b *recordingBook) Cancel(orderID string, size int64) orderbookv1.Status {
	b.calls = append(b.calls, "cancel:"+orderID)
	return orderbookv1.StatusNotFound
}

func TestCommand_Apply(t *testing.T) {
	book := &recordingBook{}

	assert.Equal(t, orderbookv1.StatusApplied, Command{Type: TypeEnter, OrderID: "B1", Side: orderbookv1.SideBuy, Size: 1}.Apply(book))
	assert.Equal(t, orderbookv1.StatusNotFound, Command{Type: TypeCancel, OrderID: "B1"}.Apply(book))
	assert.Equal(t, []string{"enter:B1", "cancel:B1"}, book.calls)
}

func TestFromBytes(t *testing.T) {
	cmd, err := FromBytes([]byte(`{"type":"enter","orderID":"S1","side":"sell","price":101,"size":7}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Type: TypeEnter, OrderID: "S1", Side: orderbookv1.SideSell, Price: 101, Size: 7}, cmd)

	_, err = FromBytes([]byte(`{"type":`))
	assert.True(t, errors.ErrorCodeEquals(err, errors.CommandDecodeError))

	data, err := Command{Type: TypeCancel, OrderID: "S1", Size: 2, Offset: 9}.ToBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"cancel","orderID":"S1","size":2}`, string(data))
}
