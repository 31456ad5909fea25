package messages

import (
	"fmt"
	"strings"

	errx "github.com/alraulpm-lang/checador/internal/core/error"
)

// Set is the user-facing feedback text in one language.
type Set struct {
	Language     string
	Loading      string
	StillLoading string
	Network      string
	EmptyCatalog string
	ScannerInit  string
	System       string

	loadedFormat   string
	notFoundFormat string
}

var English = Set{
	Language:       "en",
	Loading:        "Loading products...",
	StillLoading:   "Products are still loading. Try again in a moment.",
	Network:        errx.NetworkErrorMessage,
	EmptyCatalog:   errx.EmptyCatalogMessage,
	ScannerInit:    errx.ScannerInitMessage,
	System:         errx.SystemErrorMessage,
	loadedFormat:   "Products loaded (%d). Ready to scan.",
	notFoundFormat: errx.LookupMissFormat,
}

var Spanish = Set{
	Language:       "es",
	Loading:        "Cargando productos...",
	StillLoading:   "Los productos aún se están cargando. Intenta de nuevo en un momento.",
	Network:        "Error al conectar con la base de datos.",
	EmptyCatalog:   "Conexión exitosa, pero no se encontraron productos.",
	ScannerInit:    "No se pudo iniciar el escáner. Revisa los permisos del dispositivo.",
	System:         "Error interno.",
	loadedFormat:   "Productos cargados (%d). Listo para escanear.",
	notFoundFormat: "Producto %s no encontrado.",
}

// For returns the set for lang ("en", "es", or a tag such as "es-MX").
// Anything else falls back to English.
func For(lang string) Set {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if lang == Spanish.Language {
		return Spanish
	}
	return English
}

func (s Set) Loaded(count int) string {
	return fmt.Sprintf(s.loadedFormat, count)
}

func (s Set) NotFound(code string) string {
	return fmt.Sprintf(s.notFoundFormat, code)
}

// ForError maps an errx kind to its text. Lookup misses carry no code here, so
// callers with a code use NotFound instead.
func (s Set) ForError(err error) string {
	switch errx.KindOf(err) {
	case errx.KindNetwork:
		return s.Network
	case errx.KindEmptyCatalog:
		return s.EmptyCatalog
	case errx.KindScannerInit:
		return s.ScannerInit
	case errx.KindLookupMiss:
		return errx.Feedback(err)
	default:
		return s.System
	}
}
