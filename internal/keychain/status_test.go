package keychain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Error(t *testing.T) {
	assert.Equal(t,
		"the specified item could not be found in the keychain (-25300)",
		StatusItemNotFound.Error())
	assert.Equal(t, "unknown status (-1)", Status(-1).Error())
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		give error
		want Status
	}{
		{"Nil", nil, StatusSuccess},
		{"Bare", StatusAuthFailed, StatusAuthFailed},
		{"Wrapped", fmt.Errorf("open: %w", StatusIO), StatusIO},
		{"WrappedTwice", fmt.Errorf("read: %w: %w", errors.New("boom"), StatusDecode), StatusDecode},
		{"Foreign", errors.New("great sadness"), StatusInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.give))
		})
	}
}

func TestSentinels(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("find: %w", StatusItemNotFound), ErrItemNotFound)
	assert.ErrorIs(t, StatusDuplicateItem, ErrDuplicateItem)
	assert.NotErrorIs(t, StatusItemNotFound, ErrDuplicateItem)
}
