// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package report

import (
	"encoding/xml"
	"io"

	"github.com/ostafen/symtab/pkg/symtab"
)

const rootElement = "symtab"

// Writer streams a teardown report. Its Undefine method has the shape of a
// symtab.UndefineFunc[string], so it can be handed to symtab.New directly.
type Writer struct {
	w   io.Writer
	enc *xml.Encoder

	buckets int
	seq     int
	err     error
}

// NewWriter creates a Writer whose output is indented with two spaces.
func NewWriter(w io.Writer) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &Writer{
		w:   w,
		enc: enc,
	}
}

// WriteHeader writes the XML declaration, opens the root element and writes
// the creator and source blocks.
func (w *Writer) WriteHeader(hdr Header) error {
	if _, err := io.WriteString(w.w, xml.Header); err != nil {
		return err
	}

	version := hdr.Version
	if version == "" {
		version = FormatVersion
	}

	start := xml.StartElement{
		Name: xml.Name{Local: rootElement},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "version"}, Value: version},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	if err := w.enc.Encode(hdr.Creator); err != nil {
		return err
	}
	if err := w.enc.Encode(hdr.Source); err != nil {
		return err
	}

	w.buckets = hdr.Source.Buckets
	return nil
}

// WriteUndefined encodes a single record.
func (w *Writer) WriteUndefined(u Undefined) error {
	return w.enc.Encode(u)
}

// Undefine records an entry removed from a table with as many buckets as the
// header announced. Write errors are kept and reported by Close.
func (w *Writer) Undefine(key string, typ uint32, value string) {
	if w.err != nil {
		return
	}

	bucket := -1
	if w.buckets > 0 {
		bucket = int(uint64(symtab.Hash(key)) % uint64(w.buckets))
	}

	w.err = w.WriteUndefined(Undefined{
		Seq:    w.seq,
		Bucket: bucket,
		Name:   key,
		Type:   typ,
		Value:  value,
	})
	w.seq++
}

// Count returns the number of entries recorded through Undefine.
func (w *Writer) Count() int {
	return w.seq
}

// Close writes the closing root tag and flushes the encoder. It returns the
// first error hit while recording entries, if any.
func (w *Writer) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: rootElement}}); err != nil {
		return err
	}
	if err := w.enc.Flush(); err != nil {
		return err
	}
	return w.err
}
