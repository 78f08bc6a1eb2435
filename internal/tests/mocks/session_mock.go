package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) StoreSession(ctx context.Context, sessionID, userID string) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *SessionStoreMock) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
