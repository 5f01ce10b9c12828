package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSystemKeyring_RoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "")

	k := NewKeyring()
	require.IsType(t, &systemKeyring{}, k)
	assert.True(t, k.IsAvailable())

	_, err := k.GetKey()
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	assert.Error(t, k.SetKey(""))
	require.NoError(t, k.SetKey("s3cret"))

	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", key)

	require.NoError(t, k.DeleteKey())
	assert.ErrorIs(t, k.DeleteKey(), keyring.ErrNotFound)
}

func TestEnvKeyring(t *testing.T) {
	t.Setenv(EnvKey, "from-env")

	k := NewKeyring()
	require.IsType(t, &envKeyring{}, k)
	assert.True(t, k.IsAvailable())

	key, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	assert.Error(t, k.SetKey("other"))
	assert.Error(t, k.DeleteKey())
}
