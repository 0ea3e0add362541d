package loader

import (
	"io"
	"path/filepath"
	"strings"

	"psfinder_backend/pkg/apperrors"
)

// Record is one problem statement parsed out of a spreadsheet row.
// RowIndex is the 1-based data row it came from and is preserved as the
// ranking tiebreak downstream.
type Record struct {
	RowIndex               int
	Title                  string
	Description            string
	Category               string
	RequiredSkills         []string
	MinTeamSize            *int
	MaxTeamSize            *int
	EstimatedDurationWeeks *int
	DifficultyLevel        string
}

// Warning reports a data row that could not be coerced into a Record.
// Row numbers are 1-based over data rows, the header excluded.
type Warning struct {
	Row     int
	Message string
}

// Result is a parsed batch: the usable records plus per-row warnings.
type Result struct {
	Records  []Record
	Warnings []Warning
}

// Loader parses tabular uploads into problem records.
type Loader struct {
	skillDelimiter string
	allowedExts    map[string]bool
}

// New builds a loader. With no explicit extensions every supported format
// is accepted; deployments can restrict the set through configuration.
func New(skillDelimiter string, allowedExtensions ...string) *Loader {
	if skillDelimiter == "" {
		skillDelimiter = ","
	}
	exts := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		exts[strings.ToLower(ext)] = true
	}
	if len(exts) == 0 {
		exts = map[string]bool{".csv": true, ".xlsx": true, ".xls": true}
	}
	return &Loader{skillDelimiter: skillDelimiter, allowedExts: exts}
}

// Parse reads a spreadsheet by filename extension. Unsupported extensions
// and structurally unusable files are batch-fatal; individual bad rows are
// skipped and reported as warnings.
func (l *Loader) Parse(filename string, r io.Reader) (*Result, error) {
	var (
		rows [][]string
		err  error
	)

	ext := strings.ToLower(filepath.Ext(filename))
	if !l.allowedExts[ext] {
		return nil, apperrors.ErrUnsupportedFormat
	}

	switch ext {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readExcel(r)
	case ".xls":
		rows, err = readLegacyExcel(r)
	default:
		return nil, apperrors.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, apperrors.ErrMalformedInput(err, "could not read file")
	}

	return l.parseRows(rows)
}

func (l *Loader) parseRows(rows [][]string) (*Result, error) {
	if len(rows) < 2 {
		return nil, apperrors.ErrMalformedInput(nil, "file contains no data rows")
	}

	cols, err := detectColumns(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}

	result := &Result{
		Records:  []Record{},
		Warnings: []Warning{},
	}

	for i, row := range rows[1:] {
		rowNum := i + 1
		rec, warn := l.parseRow(row, cols, rowNum)
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
			continue
		}
		if rec == nil {
			// Entirely blank row, skipped silently.
			continue
		}
		result.Records = append(result.Records, *rec)
	}

	if len(result.Records) == 0 {
		return nil, apperrors.ErrNoValidProblems
	}

	return result, nil
}

func (l *Loader) parseRow(row []string, cols columnIndexes, rowNum int) (*Record, *Warning) {
	if isBlankRow(row) {
		return nil, nil
	}

	description := cellAt(row, cols.description)
	if description == "" {
		return nil, &Warning{Row: rowNum, Message: "missing description"}
	}

	title := cellAt(row, cols.title)
	if title == "" {
		title = deriveTitle(description)
	}
	if title == "" {
		return nil, &Warning{Row: rowNum, Message: "missing title"}
	}

	rec := &Record{
		RowIndex:        rowNum,
		Title:           title,
		Description:     description,
		Category:        cellAt(row, cols.category),
		RequiredSkills:  l.splitSkills(cellAt(row, cols.skills)),
		DifficultyLevel: cellAt(row, cols.difficulty),
	}

	var warn *Warning
	rec.MinTeamSize, warn = parseOptionalInt(row, cols.minTeamSize, rowNum, "min_team_size")
	if warn != nil {
		return nil, warn
	}
	rec.MaxTeamSize, warn = parseOptionalInt(row, cols.maxTeamSize, rowNum, "max_team_size")
	if warn != nil {
		return nil, warn
	}
	rec.EstimatedDurationWeeks, warn = parseOptionalInt(row, cols.duration, rowNum, "estimated_duration_weeks")
	if warn != nil {
		return nil, warn
	}

	if rec.MinTeamSize != nil && rec.MaxTeamSize != nil && *rec.MinTeamSize > *rec.MaxTeamSize {
		return nil, &Warning{Row: rowNum, Message: "min_team_size exceeds max_team_size"}
	}

	return rec, nil
}

// splitSkills normalizes delimited skill text: common joiners fold to the
// delimiter, tokens are trimmed and lower-cased, duplicates collapse.
func (l *Loader) splitSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}

	folded := strings.NewReplacer(" and ", l.skillDelimiter, "&", l.skillDelimiter, ";", l.skillDelimiter).Replace(raw)

	seen := make(map[string]struct{})
	skills := []string{}
	for _, token := range strings.Split(folded, l.skillDelimiter) {
		skill := strings.ToLower(strings.TrimSpace(token))
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

// deriveTitle takes the first sentence of the description, truncated to a
// displayable length.
func deriveTitle(description string) string {
	const maxLen = 100

	title := description
	if idx := strings.Index(description, "."); idx > 0 {
		title = description[:idx]
	}
	title = strings.TrimSpace(title)
	if runes := []rune(title); len(runes) > maxLen {
		title = string(runes[:maxLen-3]) + "..."
	}
	return title
}
