package sberreport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// RawReport is one loaded statement: the lenient DOM plus the name it was
// loaded under. Loading performs no semantic validation at all, a statement
// with none of the expected tables still loads fine and fails later, at
// parse time, with a precise error.
type RawReport struct {
	doc  *goquery.Document
	name string
}

// Load reads a whole statement from r and builds its DOM. The HTML parser is
// the lenient browser-grade one: unclosed tags, stray text and truncated
// documents all yield a usable tree. The only inputs rejected here are a
// failing reader and a document with no content at all.
func Load(r io.Reader, name string) (*RawReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &MalformedMarkupError{Name: name, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &MalformedMarkupError{Name: name}
	}
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedMarkupError{Name: name, Err: err}
	}
	return &RawReport{doc: goquery.NewDocumentFromNode(root), name: name}, nil
}

// LoadFile loads a statement from disk, using the base file name as the
// statement name.
func LoadFile(path string) (*RawReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MalformedMarkupError{Name: path, Err: err}
	}
	defer f.Close()
	return Load(f, filepath.Base(path))
}

// LoadString loads a statement from an in-memory HTML string.
func LoadString(s, name string) (*RawReport, error) {
	return Load(strings.NewReader(s), name)
}

// Name returns the name the statement was loaded under.
func (r *RawReport) Name() string { return r.name }
