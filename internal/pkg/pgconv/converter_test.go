package pgconv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDConversions(t *testing.T) {
	id := uuid.New()

	assert.Nil(t, UUIDPtrFromPgtype(pgtype.UUID{}))
	got := UUIDPtrFromPgtype(UUIDPtrToPgtype(&id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
	assert.False(t, UUIDPtrToPgtype(nil).Valid)
}

func TestStringPtrToPgtype_EmptyIsNull(t *testing.T) {
	empty := ""
	assert.False(t, StringPtrToPgtype(&empty).Valid)
	assert.False(t, StringPtrToPgtype(nil).Valid)

	v := "x"
	assert.Equal(t, pgtype.Text{String: "x", Valid: true}, StringPtrToPgtype(&v))
}

func TestDecimalFromText(t *testing.T) {
	d, err := DecimalFromText("450.00")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "450", DecimalToText(d))

	_, err = DecimalFromText("abc")
	assert.ErrorIs(t, err, ErrInvalidNumericValue)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("other")))
}
