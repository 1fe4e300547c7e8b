// Package stub holds the configuration files bundled with the installer.
package stub

import (
	"embed"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/acacha/adminlte-laravel-installer/internal/errors"
)

// AppConfig is the name of the bundled config/app.php stub inside FS.
const AppConfig = "stubs/app.php"

// FS contains the bundled stubs.
//
//go:embed stubs/app.php
var FS embed.FS

// Copy copies name from src to dst, replacing whatever is at dst.
// The parent directory of dst must already exist.
func Copy(src fs.FS, name, dst string) error {
	in, err := src.Open(name)
	if err != nil {
		return errors.NewCopyError(name, dst, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.NewCopyError(name, dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.NewCopyError(name, dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.NewCopyError(name, dst, err)
	}

	slog.Debug("copied stub", "stub", name, "destination", dst)
	return nil
}
