package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/storage"
)

func TestSave_RechazaExtensionNoPermitida(t *testing.T) {
	s := storage.NewLocalImageStorage(t.TempDir(), 0)
	_, err := s.Save(context.Background(), "payload.exe", strings.NewReader("MZ"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = s.Save(context.Background(), "sin_extension", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestSave_AceptaMayusculasYEsRecuperable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := storage.NewLocalImageStorage(dir, 0)

	ref, err := s.Save(context.Background(), "photo.JPG", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, storage.URLPrefix+"/"))
	assert.True(t, strings.HasSuffix(ref, "-photo.JPG"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, storage.URLPrefix+"/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestSave_MismoNombreDistintoContenidoNoSePisa(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewLocalImageStorage(dir, 0)

	a, err := s.Save(context.Background(), "foto.png", strings.NewReader("uno"))
	require.NoError(t, err)
	b, err := s.Save(context.Background(), "foto.png", strings.NewReader("dos"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	c, err := s.Save(context.Background(), "foto.png", strings.NewReader("uno"))
	require.NoError(t, err)
	assert.Equal(t, a, c, "mismo contenido, misma referencia")
}

func TestSave_PathTraversal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	s := storage.NewLocalImageStorage(dir, 0)

	ref, err := s.Save(context.Background(), "../../etc/passwd.png", strings.NewReader("x"))
	require.NoError(t, err)
	name := strings.TrimPrefix(ref, storage.URLPrefix+"/")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestSave_LimiteDeTamano(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewLocalImageStorage(dir, 4)
	_, err := s.Save(context.Background(), "big.gif", strings.NewReader("12345"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no deben quedar temporales")
}

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"My cool movie.mov":      "My_cool_movie.mov",
		"../../../etc/passwd":    "etc_passwd",
		"i contain cool ümläuts": "i_contain_cool_umlauts",
		"Canción de año.png":     "Cancion_de_ano.png",
		`C:\fotos\perro.jpeg`:    "C_fotos_perro.jpeg",
		"...":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, storage.SecureFilename(in), in)
	}
}

func TestSave_NombreVacioTrasSanear(t *testing.T) {
	s := storage.NewLocalImageStorage(t.TempDir(), 0)
	ref, err := s.Save(context.Background(), "日本.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, "-image.png"), ref)
}

func TestSave_NombreLargoSeAcortaYConservaExtension(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewLocalImageStorage(dir, 0)

	for _, n := range []int{235, 300, 1000} {
		ref, err := s.Save(context.Background(), strings.Repeat("a", n)+".PNG", strings.NewReader("png-bytes"))
		require.NoError(t, err, "nombre de %d caracteres", n)
		assert.True(t, strings.HasSuffix(ref, ".PNG"))
		assert.LessOrEqual(t, len(ref), 255, "la referencia entra en products.image_url")

		data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, storage.URLPrefix+"/")))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	}
}
