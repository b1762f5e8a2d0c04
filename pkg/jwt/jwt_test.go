package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "catalog-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(testSecret, "01ARZ3NDEKTSV4RRFFQ69G5FAV", "ana@example.com", "manager", testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", id.ID)
	assert.Equal(t, "ana@example.com", id.Email)
	assert.Equal(t, "manager", id.Role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, "u1", "a@b.com", "admin", testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrTokenExpired, "un token vencido debe distinguirse de uno malformado")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, "u1", "a@b.com", "admin", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, err := Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "a@b.com", "admin", testIssuer, time.Hour)
	assert.Error(t, err)
}
