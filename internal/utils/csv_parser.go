package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"submission-routing-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
)

// RequiredColumns defines the columns that must be present in the CSV.
var RequiredColumns = []string{
	"name",
	"regions",
	"avg_turnaround_days",
	"acceptance_rate",
	"current_workload",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	"underwriter":      "name",
	"underwriter_name": "name",
	"full_name":        "name",

	"email_address": "email",
	"mail":          "email",

	"region":   "regions",
	"coverage": "regions",

	"naics":             "naics_specialties",
	"naics_codes":       "naics_specialties",
	"specialties":       "naics_specialties",
	"naics specialties": "naics_specialties",

	"appetite":   "risk_appetite",
	"likes":      "risk_appetite",
	"aversions":  "risk_aversions",
	"avoids":     "risk_aversions",
	"exclusions": "risk_aversions",

	"turnaround":      "avg_turnaround_days",
	"turnaround_days": "avg_turnaround_days",
	"avg turnaround":  "avg_turnaround_days",

	"acceptance":       "acceptance_rate",
	"acceptance rate":  "acceptance_rate",
	"hit_ratio":        "acceptance_rate",
	"workload":         "current_workload",
	"capacity":         "current_workload",
	"current workload": "current_workload",
}

// CSVParser handles parsing of underwriter CSV files.
type CSVParser struct {
	columnMapping map[string]int
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping: make(map[string]int),
	}
}

// ParseUnderwriters parses CSV content into underwriters. List columns
// (regions, specialties, appetite, aversions) are separated by ';' or '|'.
// Rows that fail to parse or validate are reported and skipped.
func (p *CSVParser) ParseUnderwriters(content string) ([]*models.Underwriter, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	var underwriters []*models.Underwriter
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		u, err := p.parseRow(record)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		if err := models.ValidateUnderwriter(u); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		underwriters = append(underwriters, u)
	}

	if len(underwriters) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return underwriters, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)

	for i, col := range header {
		normalized := normalizeColumn(col)
		p.columnMapping[normalized] = i
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

func normalizeColumn(col string) string {
	normalized := strings.ToLower(strings.TrimSpace(col))
	if alias, ok := ColumnAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// parseRow parses a single CSV row into an Underwriter.
func (p *CSVParser) parseRow(record []string) (*models.Underwriter, error) {
	getValue := func(column string) string {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	u := &models.Underwriter{
		Name:             getValue("name"),
		Email:            getValue("email"),
		Phone:            getValue("phone"),
		Carrier:          getValue("carrier"),
		NAICSSpecialties: splitList(getValue("naics_specialties")),
		RiskAppetite:     lowerAll(splitList(getValue("risk_appetite"))),
		RiskAversions:    lowerAll(splitList(getValue("risk_aversions"))),
		CurrentWorkload:  models.NormalizeWorkload(getValue("current_workload")),
		Notes:            getValue("notes"),
	}

	for _, r := range splitList(getValue("regions")) {
		u.Regions = append(u.Regions, models.NormalizeRegion(r))
	}

	turnaround, err := parseFloat(getValue("avg_turnaround_days"))
	if err != nil {
		return nil, fmt.Errorf("invalid avg_turnaround_days: %w", err)
	}
	u.AvgTurnaroundDays = turnaround

	rate, err := parseRate(getValue("acceptance_rate"))
	if err != nil {
		return nil, fmt.Errorf("invalid acceptance_rate: %w", err)
	}
	u.AcceptanceRate = rate

	return u, nil
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func lowerAll(list []string) []string {
	for i, s := range list {
		list[i] = strings.ToLower(s)
	}
	return list
}

// parseFloat parses a string to float64, handling common formats.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	return strconv.ParseFloat(s, 64)
}

// parseRate accepts a fraction ("0.87") or a percentage ("87%", "87").
func parseRate(s string) (float64, error) {
	percent := strings.HasSuffix(s, "%")
	v, err := parseFloat(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, err
	}
	if percent || v > 1 {
		v /= 100
	}
	return v, nil
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Valid:          false,
		RowCount:       0,
		Columns:        []string{},
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	normalizedColumns := make(map[string]bool)
	for _, col := range header {
		normalizedColumns[normalizeColumn(col)] = true
		result.Columns = append(result.Columns, col)
	}

	for _, required := range RequiredColumns {
		if !normalizedColumns[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}
