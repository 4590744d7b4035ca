package infra

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_Classifies(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind []RepositoryErrorKind
		want RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "anything else", err: errors.New("conn reset"), want: KindDBFailure},
		{name: "explicit kind wins", err: errors.New("x"), kind: []RepositoryErrorKind{KindNotFound}, want: KindNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := WrapRepoErr("op failed", c.err, c.kind...)
			assert.True(t, IsKind(err, c.want))
			assert.ErrorIs(t, err, c.err)
			assert.Contains(t, err.Error(), "op failed")
		})
	}
}
