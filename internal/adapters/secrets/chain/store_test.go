package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/emetic/internal/domain"
	portmocks "github.com/bnema/emetic/internal/ports/mocks"
)

const ref = "emetic/zeus"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, ref).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, ref).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, ref).Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), ref)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetReportsNotFoundWhenNeitherBackendHasIt(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), ref)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetSkipsFallbackOnCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, ref).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), ref)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	assert.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	assert.ErrorIs(t, err, errNilFallbackStore)
}
