package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pointdomain "github.com/ecoleta/ecoleta/services/point/domain"
)

func TestPointItemInsertError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: fkViolation, ConstraintName: "point_items_item_id_fkey"}

	err := pointItemInsertError(fmt.Errorf("exec: %w", pgErr), 7)

	require.ErrorIs(t, err, pointdomain.ErrUnknownItem)
	var ue *pointdomain.UnknownItemsError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []int64{7}, ue.IDs)
	assert.Equal(t, "items", ue.Violation().Field)
}

func TestPointItemInsertError_OtherErrorsWrapped(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505"}

	err := pointItemInsertError(cause, 3)

	assert.NotErrorIs(t, err, pointdomain.ErrUnknownItem)
	assert.ErrorIs(t, err, error(cause))
	assert.Contains(t, err.Error(), "insert point item 3")

	plain := errors.New("conn reset")
	assert.ErrorIs(t, pointItemInsertError(plain, 1), plain)
}
