package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// emit escribe el resultado en JSON o delega en la impresión de texto.
func emit(w io.Writer, format string, v any, text func()) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "text", "":
		text()
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
