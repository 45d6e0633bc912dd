package vocab

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Saks85/AI-agent-for-vocab-practice/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Column header aliases accepted for the two languages, matched
// case-insensitively.
var (
	englishAliases = []string{"english", "eng", "en"}
	spanishAliases = []string{"spanish", "esp", "es"}
)

// Load reads vocabulary pairs from a CSV or Excel file. The file must
// have a header row naming the two language columns; rows missing
// either field are skipped and both sides are trimmed and lowercased.
// An empty resulting vocabulary is an error.
func Load(path string) ([]models.Word, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("vocabulary file '%s' not found", path)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var rows [][]string
	var err error
	if ext == ".xlsx" || ext == ".xlsm" {
		rows, err = readExcelRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	words, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	return words, nil
}

// readCSVRows reads all rows from a CSV file.
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readExcelRows reads all rows from the first sheet of an Excel file.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in '%s'", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

// parseRows maps the header row to language columns and extracts the
// pairs. Later rows with a duplicate English key overwrite the
// translation but keep a single entry.
func parseRows(rows [][]string) ([]models.Word, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid vocabulary pairs found")
	}

	englishCol := findColumn(rows[0], englishAliases)
	spanishCol := findColumn(rows[0], spanishAliases)
	if englishCol < 0 || spanishCol < 0 {
		return nil, fmt.Errorf("header must contain english and spanish columns (aliases: %v / %v)",
			englishAliases, spanishAliases)
	}

	var words []models.Word
	index := make(map[string]int)

	for _, row := range rows[1:] {
		if englishCol >= len(row) || spanishCol >= len(row) {
			continue
		}
		english := strings.ToLower(strings.TrimSpace(row[englishCol]))
		spanish := strings.ToLower(strings.TrimSpace(row[spanishCol]))
		if english == "" || spanish == "" {
			continue
		}

		if i, exists := index[english]; exists {
			// Same canonical key: keep one entry, latest translation wins
			words[i].Spanish = spanish
			continue
		}
		index[english] = len(words)
		words = append(words, models.Word{English: english, Spanish: spanish})
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no valid vocabulary pairs found")
	}
	return words, nil
}

// findColumn returns the index of the first header cell matching one
// of the aliases, or -1.
func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}
	return -1
}
