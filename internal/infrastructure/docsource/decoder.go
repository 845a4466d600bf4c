// Package docsource decodes uploaded financial documents into the text or
// table rows the metric extractors consume. Dispatch is by filename
// extension; decoded text is scrubbed of boilerplate before it leaves the
// package.
package docsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
)

type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(_ context.Context, filename string, data []byte) (ports.DocumentContent, error) {
	if len(data) == 0 {
		return ports.DocumentContent{}, domain.WrapError(domain.ErrInvalidInput, "decode document", errors.New("empty file"))
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return d.decodePDF(data)
	case ".xlsx":
		return d.decodeXLSX(data)
	case ".csv":
		return d.decodeCSV(data)
	default:
		return d.decodeText(filename, data)
	}
}

func (d *Decoder) decodePDF(data []byte) (ports.DocumentContent, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ports.DocumentContent{}, fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return ports.DocumentContent{}, fmt.Errorf("extract pdf text: %w", err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return ports.DocumentContent{}, fmt.Errorf("read pdf text: %w", err)
	}
	return d.textContent(string(raw))
}

func (d *Decoder) decodeXLSX(data []byte) (ports.DocumentContent, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return ports.DocumentContent{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return ports.DocumentContent{}, domain.WrapError(domain.ErrInvalidInput, "decode xlsx", errors.New("workbook has no sheets"))
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return ports.DocumentContent{}, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return ports.DocumentContent{}, domain.WrapError(domain.ErrInvalidInput, "decode xlsx", errors.New("empty sheet"))
	}
	return ports.DocumentContent{Rows: rows}, nil
}

func (d *Decoder) decodeCSV(data []byte) (ports.DocumentContent, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return ports.DocumentContent{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return ports.DocumentContent{}, domain.WrapError(domain.ErrInvalidInput, "decode csv", errors.New("empty file"))
	}
	return ports.DocumentContent{Rows: rows}, nil
}

func (d *Decoder) decodeText(filename string, data []byte) (ports.DocumentContent, error) {
	if !utf8.Valid(data) {
		return ports.DocumentContent{}, domain.WrapError(domain.ErrInvalidInput, "decode document",
			fmt.Errorf("unsupported binary format: %s", filename))
	}
	return d.textContent(string(data))
}

func (d *Decoder) textContent(raw string) (ports.DocumentContent, error) {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return ports.DocumentContent{}, domain.WrapError(domain.ErrInvalidInput, "decode document",
			errors.New("no usable content after cleaning"))
	}
	return ports.DocumentContent{Text: cleaned}, nil
}
