package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV lee una tabla delimitada cuyo encabezado (sin distinguir mayúsculas) debe contener
// Name, Quantity y StorageUnitName. Devuelve una RawRow por línea de datos no vacía.
// maxRows <= 0 desactiva el límite.
func ParseCSV(r io.Reader, maxRows int) ([]RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data, err = toUTF8(data)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.NewValidationError("file", "File is empty", nil)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, domain.NewValidationError("file", "Cannot read header row: "+err.Error(), nil)
	}
	keys := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		keys[i] = NormalizeKey(h)
		present[keys[i]] = true
	}
	var missing []string
	for _, key := range RequiredColumns() {
		if !present[key] {
			c, _ := lookupColumn(key)
			missing = append(missing, c.header)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("header", "Missing required columns: "+strings.Join(missing, ", "), nil)
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewValidationError("file", "Malformed CSV: "+err.Error(), nil)
		}
		if blankRecord(record) {
			continue
		}
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, domain.NewValidationError("file", fmt.Sprintf("File exceeds the maximum of %d rows", maxRows), nil)
		}
		raw := make(RawRow, len(keys))
		for i, key := range keys {
			if i < len(record) && key != "" {
				raw[key] = record[i]
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

// toUTF8 quita el BOM y decodifica como Windows-1252 lo que no sea UTF-8 válido (exportaciones de Excel).
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, domain.NewValidationError("file", "Unsupported file encoding", nil)
	}
	return decoded, nil
}

// detectDelimiter elige entre ',', ';' y tabulador según la línea de encabezado.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
