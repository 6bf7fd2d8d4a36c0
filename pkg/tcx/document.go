// Copyright 2025 CascadePass
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tcx

import (
	"bytes"
	"context"
	"os"
	"unicode"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html/charset"
)

// utf8BOM is the byte-order mark some recording devices prepend to files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// 📄 Document is one parsed TCX file, owned by the processing of exactly
// one file and discarded after write-back.
type Document struct {
	// Path is the file the document was read from.
	Path string

	// Raw holds the exact bytes read from disk, untouched by any
	// normalization. Backups are made from Raw so they stay
	// byte-identical to the original even when leading junk was
	// stripped before parsing.
	Raw []byte

	tree *etree.Document
}

// 📥 Load reads and parses the TCX file at path. It returns an error for
// empty, unreadable, or malformed files; callers report the error, skip
// the file, and keep going. Load never mutates the file.
func Load(ctx context.Context, path string) (*Document, error) {
	logger := zerolog.Ctx(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.Errorf("file is empty: %s", path)
	}

	// Some head units write a BOM or stray control bytes ahead of the
	// XML declaration; strict parsers reject those, so the trim is
	// unconditional.
	cleaned := trimLeadingJunk(raw)
	if trimmed := len(raw) - len(cleaned); trimmed > 0 {
		logger.Debug().
			Str("file", path).
			Int("bytes", trimmed).
			Msg("stripped leading junk before XML declaration")
	}
	if len(cleaned) == 0 {
		return nil, errors.Errorf("file has no XML content: %s", path)
	}

	tree := etree.NewDocument()
	tree.ReadSettings.PreserveCData = true
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := tree.ReadFromBytes(cleaned); err != nil {
		return nil, errors.Errorf("parsing XML: %w", err)
	}
	if tree.Root() == nil {
		return nil, errors.Errorf("document has no root element: %s", path)
	}

	return &Document{
		Path: path,
		Raw:  raw,
		tree: tree,
	}, nil
}

// WriteToBytes serializes the document. Character data the scaler never
// touched round-trips exactly; the document is never re-indented.
func (d *Document) WriteToBytes() ([]byte, error) {
	out, err := d.tree.WriteToBytes()
	if err != nil {
		return nil, errors.Errorf("serializing XML: %w", err)
	}
	return out, nil
}

// Root returns the document's root element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// trimLeadingJunk strips a UTF-8 BOM plus any whitespace or control
// characters that precede the first markup byte.
func trimLeadingJunk(b []byte) []byte {
	b = bytes.TrimPrefix(b, utf8BOM)
	return bytes.TrimLeftFunc(b, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
