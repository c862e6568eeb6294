package spreadsheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Columns is the header row of the inventory file. Order is part of the file format.
var Columns = []string{"Nama", "Harga", "Stok", "Kategori", "Merek", "Garansi", "Ukuran", "Bahan", "Jenis"}

const (
	colName = iota
	colPrice
	colStock
	colCategory
	colBrand
	colWarranty
	colSize
	colMaterial
	colKind
)

// DefaultSheet is the sheet name used when none is configured.
const DefaultSheet = "Sheet1"

var (
	ErrNoSheets       = errors.New("spreadsheet has no sheets")
	ErrEmpty          = errors.New("spreadsheet is empty")
	ErrHeaderMismatch = errors.New("spreadsheet header does not match inventory columns")
	ErrMalformedRow   = errors.New("malformed inventory row")
)

// RowError reports a structurally invalid data row. Row is 1-based as shown in spreadsheet apps.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

type xlsxSheet struct {
	sheet  string
	logger *zap.Logger
}

// NewXLSXSheet xlsx inventory codec. Writes go to the named sheet, reads use the first sheet.
func NewXLSXSheet(sheet string, logger *zap.Logger) repository.InventorySheet {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &xlsxSheet{sheet: sheet, logger: logger}
}

// ReadFile decodes the spreadsheet at path
func (s *xlsxSheet) ReadFile(ctx context.Context, path string) (*repository.SheetContents, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer f.Close()

	return s.decode(f)
}

// ReadBytes decodes an uploaded spreadsheet
func (s *xlsxSheet) ReadBytes(ctx context.Context, data []byte, filename string) (*repository.SheetContents, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	return s.decode(f)
}

// WriteFile writes to a temp file next to path and renames it over path,
// so readers never see a half-written inventory.
func (s *xlsxSheet) WriteFile(ctx context.Context, path string, items []entity.Item) error {
	f, err := s.encode(items)
	if err != nil {
		return err
	}
	defer f.Close()

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := f.WriteTo(tmp); err != nil {
		cleanup()
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync inventory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close inventory: %w", err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod inventory: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace inventory: %w", err)
	}
	return nil
}

// WriteBytes encodes the items as an xlsx document
func (s *xlsxSheet) WriteBytes(ctx context.Context, items []entity.Item) ([]byte, error) {
	f, err := s.encode(items)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *xlsxSheet) encode(items []entity.Item) (*excelize.File, error) {
	f := excelize.NewFile()
	if s.sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, s.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := encodeRow(item)
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// encodeRow maps an item onto the fixed column superset; fields of other variants stay empty.
func encodeRow(item entity.Item) []interface{} {
	row := []interface{}{item.Name, priceCell(item.Price), item.Stock, string(item.Category()), "", "", "", "", ""}
	switch d := item.Details.(type) {
	case entity.Electronics:
		row[colBrand] = d.Brand
		row[colWarranty] = d.WarrantyYears
	case entity.Clothing:
		row[colSize] = d.Size
		row[colMaterial] = d.Material
	case entity.SchoolSupply:
		row[colKind] = d.Kind
		row[colBrand] = d.Brand
	}
	return row
}

// priceCell writes prices as numeric cells when the number survives the cell
// type exactly, and as text otherwise. The decoder reads both.
func priceCell(p decimal.Decimal) interface{} {
	if p.IsInteger() && p.BigInt().IsInt64() {
		return p.IntPart()
	}
	if f := p.InexactFloat64(); decimal.NewFromFloat(f).Equal(p) {
		return f
	}
	return p.String()
}

func (s *xlsxSheet) decode(f *excelize.File) (*repository.SheetContents, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	out := &repository.SheetContents{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		item, ok, err := decodeRow(i+1, pad(row, len(Columns)))
		if err != nil {
			return nil, err
		}
		if !ok {
			tag := strings.TrimSpace(pad(row, len(Columns))[colCategory])
			s.logger.Warn("skipping row with unknown category",
				zap.Int("row", i+1), zap.String("category", tag))
			out.Skipped++
			out.SkippedTags = append(out.SkippedTags, tag)
			continue
		}
		out.Items = append(out.Items, item)
	}

	s.logger.Debug("inventory sheet decoded",
		zap.String("sheet", sheets[0]),
		zap.Int("items", len(out.Items)),
		zap.Int("skipped", out.Skipped))
	return out, nil
}

func checkHeader(header []string) error {
	got := trimTrailingEmpty(header)
	if len(got) != len(Columns) {
		return fmt.Errorf("%w: got %v", ErrHeaderMismatch, got)
	}
	for i, c := range Columns {
		if strings.TrimSpace(got[i]) != c {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i+1, got[i], c)
		}
	}
	return nil
}

// decodeRow returns ok=false for rows whose category tag is unknown.
func decodeRow(rowNum int, row []string) (entity.Item, bool, error) {
	cell := func(col int) string { return strings.TrimSpace(row[col]) }
	rowErr := func(col int, format string, args ...interface{}) error {
		return &RowError{Row: rowNum, Column: Columns[col], Err: fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedRow}, args...)...)}
	}

	name := cell(colName)
	if name == "" {
		return entity.Item{}, false, rowErr(colName, "name is empty")
	}
	price, err := decimal.NewFromString(cell(colPrice))
	if err != nil {
		return entity.Item{}, false, rowErr(colPrice, "invalid number %q", cell(colPrice))
	}
	stock, err := parseInt(cell(colStock), false)
	if err != nil {
		return entity.Item{}, false, rowErr(colStock, "%v", err)
	}

	item := entity.Item{Name: name, Price: price, Stock: stock}
	switch entity.Category(cell(colCategory)) {
	case entity.CategoryElectronics:
		warranty, err := parseInt(cell(colWarranty), true)
		if err != nil {
			return entity.Item{}, false, rowErr(colWarranty, "%v", err)
		}
		item.Details = entity.Electronics{Brand: cell(colBrand), WarrantyYears: warranty}
	case entity.CategoryClothing:
		item.Details = entity.Clothing{Size: cell(colSize), Material: cell(colMaterial)}
	case entity.CategorySchoolSupply:
		item.Details = entity.SchoolSupply{Kind: cell(colKind), Brand: cell(colBrand)}
	default:
		return entity.Item{}, false, nil
	}
	return item, true, nil
}

// parseInt accepts integral numbers written as "3" or "3.0".
func parseInt(s string, emptyIsZero bool) (int, error) {
	if s == "" {
		if emptyIsZero {
			return 0, nil
		}
		return 0, errors.New("value is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(d.IntPart()), nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// pad returns row extended with empty cells; GetRows drops trailing blanks.
func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
