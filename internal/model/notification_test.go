package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawNotification(t *testing.T) {
	t.Parallel()

	body := []byte("txn_id=TXN001&payer_email=a%40b.c&custom=hi+there&txn_id=OTHER&flag")

	raw, err := ParseRawNotification(body)
	require.NoError(t, err)

	assert.Equal(t, body, raw.Body)
	assert.Equal(t, []Field{
		{Key: "txn_id", Value: "TXN001"},
		{Key: "payer_email", Value: "a@b.c"},
		{Key: "custom", Value: "hi there"},
		{Key: "txn_id", Value: "OTHER"},
		{Key: "flag", Value: ""},
	}, raw.Fields)

	p := NewVerifiedPayload(raw)
	assert.Equal(t, "TXN001", p.Get("txn_id"), "first value wins")
	assert.Equal(t, 4, p.Len())
}

func TestParseRawNotification_BadEscape(t *testing.T) {
	t.Parallel()

	_, err := ParseRawNotification([]byte("a=%zz"))
	require.Error(t, err)
}
