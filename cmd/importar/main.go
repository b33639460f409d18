// importar genera un script SQL de carga inicial del catálogo a partir de una
// exportación XML de un sistema legado (tiendas que migran desde software de
// caja registradora, habitualmente codificado en ISO-8859-1).
//
// Uso: go run ./cmd/importar [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual.
// Escribe: migrations/0002_seed_catalogo.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Articulos []articulo `xml:"articulo"`
}

type articulo struct {
	Codigo      string `xml:"codigo,attr"`
	Nombre      string `xml:"nombre,attr"`
	Descripcion string `xml:"descripcion,attr"`
	Precio      string `xml:"precio,attr"`
	Stock       string `xml:"stock,attr"`
	Tipo        string `xml:"tipo,attr"` // bien | servicio; vacío = bien
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var cat catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&cat); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Deduplicar por código de barras: la última aparición gana
	porCodigo := make(map[string]articulo)
	for _, a := range cat.Articulos {
		codigo := strings.TrimSpace(a.Codigo)
		if codigo == "" || strings.TrimSpace(a.Nombre) == "" {
			continue
		}
		a.Codigo = codigo
		porCodigo[codigo] = a
	}

	// Ordenar por código para salida estable
	var codigos []string
	for c := range porCodigo {
		codigos = append(codigos, c)
	}
	sort.Strings(codigos)

	if len(codigos) == 0 {
		fmt.Fprintln(os.Stderr, "El XML no contiene artículos válidos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "0002_seed_catalogo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos\n")
	out.WriteString("-- Generado desde " + filepath.Base(xmlPath) + " (exportación del sistema legado)\n\n")
	out.WriteString("INSERT INTO productos (nombre, descripcion, precio, tipo, stock, codigo_barras, activo) VALUES\n")

	for i, c := range codigos {
		a := porCodigo[c]
		tipo := strings.ToLower(strings.TrimSpace(a.Tipo))
		if tipo != "servicio" {
			tipo = "bien"
		}
		precio := strings.TrimSpace(a.Precio)
		if precio == "" {
			precio = "NULL"
		}
		stock := strings.TrimSpace(a.Stock)
		if stock == "" || tipo == "servicio" {
			stock = "0"
		}
		sep := ","
		if i == len(codigos)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', %s, '%s', %s, '%s', TRUE)%s\n",
			escapeSQL(strings.TrimSpace(a.Nombre)),
			escapeSQL(strings.TrimSpace(a.Descripcion)),
			precio, tipo, stock, escapeSQL(a.Codigo), sep,
		)
	}
	out.WriteString("ON CONFLICT (codigo_barras) DO UPDATE SET\n")
	out.WriteString("  nombre = EXCLUDED.nombre,\n")
	out.WriteString("  descripcion = EXCLUDED.descripcion,\n")
	out.WriteString("  precio = EXCLUDED.precio,\n")
	out.WriteString("  stock = EXCLUDED.stock;\n")

	fmt.Printf("Generado %s: %d productos\n", outPath, len(codigos))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
