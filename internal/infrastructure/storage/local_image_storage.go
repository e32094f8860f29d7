// Package storage guarda las imágenes de productos en disco.
package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/zeebo/blake3"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain"
)

var _ ports.ImageStorage = (*LocalImageStorage)(nil)

// URLPrefix ruta pública bajo la que se sirven las imágenes guardadas.
const URLPrefix = "/uploads"

var allowedExt = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// maxBaseLen tope del nombre saneado sin extensión: la referencia final debe entrar en
// products.image_url (VARCHAR 255) y en el límite de nombre de archivo del sistema.
const maxBaseLen = 100

// LocalImageStorage guarda imágenes en dir con nombre <blake3 del contenido>-<nombre saneado>.
// Dos archivos con igual nombre y distinto contenido no se pisan; el mismo archivo subido dos
// veces termina en la misma ruta.
type LocalImageStorage struct {
	dir      string
	maxBytes int64
}

// NewLocalImageStorage construye el almacenamiento. El directorio se crea al primer Save.
func NewLocalImageStorage(dir string, maxBytes int64) *LocalImageStorage {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &LocalImageStorage{dir: dir, maxBytes: maxBytes}
}

// Dir directorio raíz en disco.
func (s *LocalImageStorage) Dir() string { return s.dir }

// Save valida la extensión (png, jpg, jpeg, gif sin distinguir mayúsculas), escribe el contenido
// y devuelve la referencia /uploads/<nombre>.
func (s *LocalImageStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.ReplaceAll(filename, `\`, "/")), "."))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, filename)
	}
	safe := SecureFilename(filename)
	if strings.TrimSuffix(strings.ToLower(safe), "."+ext) == "" || !strings.HasSuffix(strings.ToLower(safe), "."+ext) {
		safe = "image." + ext
	}
	safe = truncateBase(safe, len(ext)+1)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de uploads: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("crear archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), io.LimitReader(content, s.maxBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	if n > s.maxBytes {
		return "", fmt.Errorf("%w: la imagen supera %d bytes", domain.ErrValidation, s.maxBytes)
	}

	name := hex.EncodeToString(h.Sum(nil))[:16] + "-" + safe
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	committed = true
	return URLPrefix + "/" + name, nil
}

// truncateBase acorta la parte del nombre anterior a los últimos extLen bytes (".ext").
func truncateBase(name string, extLen int) string {
	base, suffix := name[:len(name)-extLen], name[len(name)-extLen:]
	if len(base) <= maxBaseLen {
		return name
	}
	base = strings.TrimRight(base[:maxBaseLen], "._-")
	if base == "" {
		base = "image"
	}
	return base + suffix
}

// SecureFilename reduce un nombre de archivo a ASCII seguro: descompone acentos,
// elimina separadores de ruta y cualquier carácter fuera de [A-Za-z0-9_.-], y quita
// puntos y guiones bajos iniciales/finales. Puede devolver "".
func SecureFilename(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}
