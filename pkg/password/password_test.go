package password_test

import (
	"bytes"
	"testing"

	"github.com/KDAtkins/infrastructure/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAndVerify(t *testing.T) {
	salt, err := password.NewSalt()
	require.NoError(t, err)
	assert.Len(t, salt, password.SaltLen)

	hash := password.Default.Derive("correct horse battery staple", salt)
	assert.Len(t, hash, password.HashLen)

	assert.True(t, password.Default.Verify("correct horse battery staple", salt, hash))
	assert.False(t, password.Default.Verify("correct horse battery stapl", salt, hash))
	assert.False(t, password.Default.Verify("", salt, hash))
}

func TestDeriveDependsOnSaltAndIterations(t *testing.T) {
	fast := password.Hasher{Iterations: 1000}
	saltA := bytes.Repeat([]byte{0xA}, password.SaltLen)
	saltB := bytes.Repeat([]byte{0xB}, password.SaltLen)

	assert.Equal(t, fast.Derive("pw", saltA), fast.Derive("pw", saltA))
	assert.NotEqual(t, fast.Derive("pw", saltA), fast.Derive("pw", saltB))
	assert.NotEqual(t, fast.Derive("pw", saltA), password.Hasher{Iterations: 1001}.Derive("pw", saltA))
}

func TestNewSaltIsRandom(t *testing.T) {
	a, err := password.NewSalt()
	require.NoError(t, err)
	b, err := password.NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEqual(t *testing.T) {
	assert.True(t, password.Equal([]byte("abc"), []byte("abc")))
	assert.False(t, password.Equal([]byte("abc"), []byte("abd")))
	assert.False(t, password.Equal([]byte("abc"), []byte("abcd")))
}
