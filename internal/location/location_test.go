package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticOneShot(t *testing.T) {
	provider := NewStatic(48.8566, 2.3522)

	coords, err := provider.OneShot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 48.8566, coords.Lat)
	assert.Equal(t, 2.3522, coords.Lon)
}

func TestStaticOneShotOutOfRange(t *testing.T) {
	provider := NewStatic(120, 0)

	_, err := provider.OneShot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestStaticOneShotCancelledContext(t *testing.T) {
	provider := NewStatic(48.8566, 2.3522)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.OneShot(ctx)
	require.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	denied := UserMessage(ErrDenied)
	unavailable := UserMessage(ErrUnavailable)
	generic := UserMessage(errors.New("gps on fire"))

	assert.Contains(t, denied, "denied")
	assert.Contains(t, unavailable, "Could not determine")
	assert.NotEqual(t, denied, unavailable)
	assert.NotEqual(t, generic, denied)
	assert.NotEqual(t, generic, unavailable)
}
