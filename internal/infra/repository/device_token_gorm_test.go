package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveTokensForShopJoinsMembership(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceTokenGormRepository(db)

	mock.ExpectQuery(`SELECT .*token.* FROM "device_push_tokens" `+
		`JOIN shop_users su ON su\.shop_id = device_push_tokens\.shop_id AND su\.user_id = device_push_tokens\.user_id `+
		`WHERE device_push_tokens\.is_active = \$1 AND device_push_tokens\.shop_id = \$2 ORDER BY device_push_tokens\.id`).
		WithArgs(true, uint(10)).
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("owner-tok").AddRow("staff-tok"))

	shopID := uint(10)
	tokens, err := repo.ActiveTokens(context.Background(), nil, &shopID)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner-tok", "staff-tok"}, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveTokensForUserSkipsMembershipJoin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceTokenGormRepository(db)

	mock.ExpectQuery(`SELECT .*token.* FROM "device_push_tokens" WHERE device_push_tokens\.is_active = \$1 AND device_push_tokens\.user_id = \$2 ORDER BY device_push_tokens\.id`).
		WithArgs(true, uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow("tok"))

	userID := uint(1)
	tokens, err := repo.ActiveTokens(context.Background(), &userID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tok"}, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}
