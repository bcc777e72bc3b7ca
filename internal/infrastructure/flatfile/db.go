// Package flatfile implementa los repositorios sobre archivos de texto delimitados por comas
// (tiendas, productos e inventario), con un encabezado fijo por archivo.
//
// Cada operación lee el archivo completo; las escrituras de inventario reescriben el archivo entero
// de forma atómica (archivo temporal + Rename). Un único RWMutex por DB serializa las escrituras
// dentro del proceso; dos procesos sobre los mismos archivos pueden perder actualizaciones.
package flatfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Paths rutas de los tres archivos.
type Paths struct {
	Stores    string
	Inventory string
	Products  string
}

// DB agrupa el sistema de archivos, las rutas y el candado compartido por los repositorios.
type DB struct {
	fs    afero.Fs
	paths Paths
	mu    sync.RWMutex
}

// Open prepara los archivos (crea directorios y encabezados si faltan) y valida los encabezados existentes.
func Open(fs afero.Fs, paths Paths) (*DB, error) {
	db := &DB{fs: fs, paths: paths}
	for _, f := range []struct{ path, header string }{
		{paths.Stores, storesHeader},
		{paths.Inventory, inventoryHeader},
		{paths.Products, productsHeader},
	} {
		if err := db.ensureFile(f.path, f.header); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// OpenOS abre la DB sobre el sistema de archivos del host.
func OpenOS(paths Paths) (*DB, error) {
	return Open(afero.NewOsFs(), paths)
}

func (db *DB) ensureFile(path, header string) error {
	if err := db.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio de %s: %w", path, err)
	}
	info, err := db.fs.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err != nil || info.Size() == 0 {
		if err := afero.WriteFile(db.fs, path, []byte(header+"\n"), 0o644); err != nil {
			return fmt.Errorf("escribir encabezado de %s: %w", path, err)
		}
		return nil
	}
	_, err = db.readRecords(path, header)
	return err
}

// view ejecuta fn con candado de lectura.
func (db *DB) view(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn()
}

// update ejecuta fn con candado exclusivo.
func (db *DB) update(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn()
}

// readRecords lee el archivo, valida el encabezado y devuelve las líneas de datos no vacías.
func (db *DB) readRecords(path, header string) ([]string, error) {
	raw, err := afero.ReadFile(db.fs, path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != header {
		return nil, fmt.Errorf("%s: encabezado inesperado, se esperaba %q", path, header)
	}
	records := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, line)
	}
	return records, nil
}

// appendRecord agrega una línea al final del archivo.
func (db *DB) appendRecord(path, record string) error {
	f, err := db.fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	if _, err := f.WriteString(record + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", path, err)
	}
	return nil
}

// rewrite reemplaza el archivo completo: escribe un temporal en el mismo directorio y lo renombra.
func (db *DB) rewrite(path, header string, records []string) error {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(r)
		b.WriteByte('\n')
	}

	tmp, err := afero.TempFile(db.fs, filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("crear temporal para %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = db.fs.Remove(tmpName) }()

	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("escribir temporal para %s: %w", path, err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal para %s: %w", path, err)
	}
	if err := db.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("reemplazar %s: %w", path, err)
	}
	return nil
}
