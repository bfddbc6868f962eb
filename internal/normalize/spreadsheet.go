package normalize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// firstSheetCSV flattens the first sheet of a workbook into comma-delimited
// text. Only the first sheet is considered: multi-sheet workbooks are not
// combined, so there is never ambiguity about which sheet is authoritative.
func firstSheetCSV(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		// Legacy binary .xls workbooks are not readable here.
		return "", fmt.Errorf("open workbook (convert legacy .xls files to .xlsx): %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}
