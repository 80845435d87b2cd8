package money

import (
	"testing"

	"github.com/Veraticus/budget-tracker/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1500", want: "1500"},
		{input: "50.25", want: "50.25"},
		{input: ".5", want: "0.5"},
		{input: "3.", want: "3"},
		{input: "-3", want: "-3"},
		{input: "+7.10", want: "7.1"},
		{input: "0", want: "0"},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "1,500", wantErr: true},
		{input: "1e3", wantErr: true},
		{input: "1.2.3", wantErr: true},
		{input: "-", wantErr: true},
		{input: ".", wantErr: true},
		{input: "12abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidAmount)

				var amountErr *model.InvalidAmountError
				require.ErrorAs(t, err, &amountErr)
				assert.Equal(t, tt.input, amountErr.Token)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
