package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndCompare(t *testing.T) {
	s := NewPasswordService(bcrypt.MinCost)

	hash, err := s.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	match, err := s.Compare("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = s.Compare("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordService_CompareMalformedHash(t *testing.T) {
	s := NewPasswordService(bcrypt.MinCost)

	match, err := s.Compare("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, match)
}

func TestPasswordService_DefaultCost(t *testing.T) {
	s := NewPasswordService(0)

	assert.Equal(t, 12, s.cost)
}

func TestPasswordService_HashesDiffer(t *testing.T) {
	s := NewPasswordService(bcrypt.MinCost)

	first, err := s.Hash("password123")
	require.NoError(t, err)
	second, err := s.Hash("password123")
	require.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, first, second)
}
