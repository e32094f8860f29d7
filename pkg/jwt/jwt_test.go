package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/nahuelmangano/speedtest/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testSessionID = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "portfolio-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sid, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSessionID, sid)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestParse_TokenManipulado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSessionID, testIssuer, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1] + "x"
	_, err = pkgjwt.Parse(testSecret, strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestGenerate_ParametrosVacios(t *testing.T) {
	_, err := pkgjwt.Generate("", testSessionID, testIssuer, time.Hour)
	assert.Error(t, err)
	_, err = pkgjwt.Generate(testSecret, "", testIssuer, time.Hour)
	assert.Error(t, err)
}
