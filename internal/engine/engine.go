package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token.
type Token struct {
	Kind   Kind
	String string
	Number string // raw number text as it appeared in the input
	Bool   bool
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
}

// ErrNotObject is returned by ReadObject when the top-level value is not a
// JSON object.
var ErrNotObject = errors.New("engine: top-level value is not an object")

// ErrTrailingData is returned by ReadObject when input continues after the
// top-level object.
var ErrTrailingData = errors.New("engine: unexpected data after top-level object")

// Member is one top-level object member. Value holds the member value as
// compact JSON, re-serialized token by token so nested key order is kept.
type Member struct {
	Name  string
	Value []byte
}

// ReadObject consumes a single top-level object from src and returns its
// members in input order. Trailing data after the object is an error.
func ReadObject(src TokenSource) ([]Member, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if tok.Kind != KindBeginObject {
		return nil, ErrNotObject
	}
	var members []Member
	for {
		kt, err := src.NextToken()
		if err != nil {
			return nil, eofToUnexpected(err)
		}
		if kt.Kind == KindEndObject {
			break
		}
		if kt.Kind != KindKey {
			return nil, fmt.Errorf("engine: expected key, got token kind %d", kt.Kind)
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofToUnexpected(err)
		}
		var buf bytes.Buffer
		if err := CaptureValue(src, vt, &buf); err != nil {
			return nil, err
		}
		members = append(members, Member{Name: kt.String, Value: buf.Bytes()})
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return members, nil
}

// CaptureValue writes the value starting at tok to w as compact JSON.
func CaptureValue(src TokenSource, tok Token, w *bytes.Buffer) error {
	switch tok.Kind {
	case KindBeginObject:
		return captureObject(src, w)
	case KindBeginArray:
		return captureArray(src, w)
	case KindString:
		return writeString(w, tok.String)
	case KindNumber:
		w.WriteString(tok.Number)
		return nil
	case KindBool:
		if tok.Bool {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
		return nil
	case KindNull:
		w.WriteString("null")
		return nil
	default:
		return io.ErrUnexpectedEOF
	}
}

func captureObject(src TokenSource, w *bytes.Buffer) error {
	w.WriteByte('{')
	first := true
	for {
		tok, err := src.NextToken()
		if err != nil {
			return eofToUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			w.WriteByte('}')
			return nil
		}
		if tok.Kind != KindKey {
			return io.ErrUnexpectedEOF
		}
		if !first {
			w.WriteByte(',')
		}
		first = false
		if err := writeString(w, tok.String); err != nil {
			return err
		}
		w.WriteByte(':')
		vt, err := src.NextToken()
		if err != nil {
			return eofToUnexpected(err)
		}
		if err := CaptureValue(src, vt, w); err != nil {
			return err
		}
	}
}

func captureArray(src TokenSource, w *bytes.Buffer) error {
	w.WriteByte('[')
	first := true
	for {
		tok, err := src.NextToken()
		if err != nil {
			return eofToUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			w.WriteByte(']')
			return nil
		}
		if !first {
			w.WriteByte(',')
		}
		first = false
		if err := CaptureValue(src, tok, w); err != nil {
			return err
		}
	}
}

func writeString(w *bytes.Buffer, s string) error {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.Write(b)
	return nil
}

func eofToUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
