package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonOf(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("fetch: %w", NewFetchError(ReasonBadStatus, cause))

	assert.Equal(t, ReasonBadStatus, ReasonOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, ReasonNetwork, ReasonOf(cause))
	assert.Equal(t, ReasonAttached, ReasonOf(nil))
	assert.Equal(t, "decode", NewFetchError(ReasonDecode, nil).Error())
}
