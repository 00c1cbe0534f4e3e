// Package tokenfmt writes identifier token streams.
//
// The text format streams one token per line as tokens arrive and is the
// default output of idfilter. The structured formats (json, yaml, cbor)
// buffer the stream and encode a single Document when the writer is closed.
package tokenfmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (want text, json, yaml or cbor)", s)
}

// Document is the structured form of one scan.
type Document struct {
	Source string   `json:"source" yaml:"source" cbor:"source"`
	Tokens []string `json:"tokens" yaml:"tokens" cbor:"tokens"`
	Count  int      `json:"count" yaml:"count" cbor:"count"`
	Digest string   `json:"digest,omitempty" yaml:"digest,omitempty" cbor:"digest,omitempty"`
}

// Options configure a Writer.
type Options struct {
	Format Format
	Source string // Input name recorded in structured documents ("-" for stdin)
	Digest bool   // Append the token-stream digest

	// Continued marks a document that follows an earlier one on the same
	// stream (watch mode). YAML documents are then preceded by "---". JSON
	// values and CBOR data items are self-delimiting, so those streams decode
	// with json.Decoder and cbor.Decoder. Text output just continues.
	Continued bool
}

// Writer receives tokens from a scan and encodes them to an io.Writer.
//
// Emit has the signature of a scan callback and cannot report failure, so
// the first write error is kept and returned by Close. Tokens emitted after
// a failure are dropped.
type Writer struct {
	opts   Options
	out    *bufio.Writer
	tokens []string
	count  int
	digest *Digester
	err    error
}

// NewWriter returns a Writer encoding to w.
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}

	tw := &Writer{
		opts: opts,
		out:  bufio.NewWriter(w),
	}
	if opts.Digest {
		tw.digest = NewDigester()
	}
	return tw, nil
}

// Emit records one token.
func (w *Writer) Emit(token string) {
	if w.err != nil {
		return
	}
	w.count++
	if w.digest != nil {
		w.digest.Add(token)
	}

	if w.opts.Format != FormatText {
		w.tokens = append(w.tokens, token)
		return
	}
	if _, err := w.out.WriteString(token); err != nil {
		w.err = err
		return
	}
	if err := w.out.WriteByte('\n'); err != nil {
		w.err = err
	}
}

// Count returns the number of tokens emitted so far.
func (w *Writer) Count() int {
	return w.count
}

// Close writes any buffered document and the digest, then flushes.
func (w *Writer) Close() error {
	if w.err != nil {
		return fmt.Errorf("failed to write tokens: %w", w.err)
	}

	var err error
	switch w.opts.Format {
	case FormatText:
		if w.digest != nil {
			_, err = fmt.Fprintln(w.out, w.digest.Sum())
		}
	default:
		err = w.encodeDocument()
	}
	if err != nil {
		return err
	}

	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func (w *Writer) document() Document {
	doc := Document{
		Source: w.opts.Source,
		Tokens: w.tokens,
		Count:  len(w.tokens),
	}
	if doc.Tokens == nil {
		doc.Tokens = []string{}
	}
	if w.digest != nil {
		doc.Digest = w.digest.Sum()
	}
	return doc
}

func (w *Writer) encodeDocument() error {
	doc := w.document()

	switch w.opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
	case FormatYAML:
		if w.opts.Continued {
			if _, err := w.out.WriteString("---\n"); err != nil {
				return fmt.Errorf("failed to write YAML separator: %w", err)
			}
		}
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("YAML encoding failed: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("YAML encoding failed: %w", err)
		}
	case FormatCBOR:
		data, err := MarshalCBOR(doc)
		if err != nil {
			return err
		}
		if _, err := w.out.Write(data); err != nil {
			return fmt.Errorf("failed to write CBOR document: %w", err)
		}
	}
	return nil
}

// MarshalCBOR produces the deterministic CBOR encoding of doc, so equal
// scans encode to identical bytes.
func MarshalCBOR(doc Document) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	data, err := encMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalCBOR decodes a document produced by MarshalCBOR.
func UnmarshalCBOR(data []byte) (Document, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("CBOR decoding failed: %w", err)
	}
	return doc, nil
}
