package session

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media_backend/internal/feature/auth/usecase"
)

// Transport-level failures must propagate as-is, not be mistaken for a
// missing session. redismock lets us inject them deterministically.

func TestSessionRedis_FindByID_TransportError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	netErr := errors.New("connection reset")
	mock.ExpectGet("session:some-id").SetErr(netErr)

	found, err := repo.FindByID(context.Background(), "some-id")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, netErr)
	assert.NotErrorIs(t, err, usecase.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_CountByUserID_SMembersError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	mock.ExpectSMembers("session:user:1").SetErr(errors.New("timeout"))

	_, err := repo.CountByUserID(context.Background(), 1)

	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
