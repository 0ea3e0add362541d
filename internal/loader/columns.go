package loader

import (
	"strconv"
	"strings"

	"psfinder_backend/pkg/apperrors"
)

// columnIndexes holds the resolved position of each recognized column.
// -1 means the column is absent.
type columnIndexes struct {
	title       int
	description int
	category    int
	skills      int
	difficulty  int
	minTeamSize int
	maxTeamSize int
	duration    int
}

var (
	titleAliases       = []string{"title", "problem title", "name"}
	descriptionAliases = []string{"description", "problem description", "problem statement", "statement", "problem", "challenge", "project"}
	categoryAliases    = []string{"category", "domain"}
	difficultyAliases  = []string{"difficulty", "difficulty_level", "difficulty level", "level", "complexity"}
	minSizeAliases     = []string{"min_team_size", "min team size", "minimum team size"}
	maxSizeAliases     = []string{"max_team_size", "max team size", "maximum team size"}
	durationAliases    = []string{"estimated_duration_weeks", "duration_weeks", "duration (weeks)", "duration", "estimated duration"}

	skillKeywords = []string{"technology", "tech stack", "technical", "skills", "requirements", "required_skills"}

	// Words common in problem descriptions, used to pick a description
	// column when no header matches.
	contentIndicators = []string{"implement", "create", "develop", "build", "design", "requirement", "feature", "functionality"}
)

// detectColumns maps the header row to known fields. When no header names
// a description column, the column whose sample values look most like
// prose is used instead. A file with no identifiable description column
// is unusable.
func detectColumns(header []string, data [][]string) (columnIndexes, error) {
	cols := columnIndexes{
		title:       findAlias(header, titleAliases),
		description: findAlias(header, descriptionAliases),
		category:    findAlias(header, categoryAliases),
		difficulty:  findAlias(header, difficultyAliases),
		minTeamSize: findAlias(header, minSizeAliases),
		maxTeamSize: findAlias(header, maxSizeAliases),
		duration:    findAlias(header, durationAliases),
		skills:      findKeyword(header, skillKeywords),
	}

	if cols.description == -1 {
		cols.description = guessDescriptionColumn(header, data, cols)
	}
	if cols.description == -1 {
		return cols, apperrors.ErrMalformedInput(nil, "could not identify a problem description column")
	}

	return cols, nil
}

func findAlias(header []string, aliases []string) int {
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if name == a {
				return i
			}
		}
	}
	return -1
}

func findKeyword(header []string, keywords []string) int {
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return i
			}
		}
	}
	return -1
}

// guessDescriptionColumn scores each unclaimed column over its first few
// values: longer text and indicator words both count toward the score.
func guessDescriptionColumn(header []string, data [][]string, cols columnIndexes) int {
	claimed := map[int]bool{
		cols.title: true, cols.category: true, cols.skills: true,
		cols.difficulty: true, cols.minTeamSize: true,
		cols.maxTeamSize: true, cols.duration: true,
	}

	const sampleSize = 5

	// Below this score the column holds short codes or numbers, not
	// prose, and claiming it would produce junk records.
	const minScore = 0.5

	bestScore := minScore
	best := -1
	for i := range header {
		if claimed[i] {
			continue
		}

		score := 0.0
		sampled := 0
		for _, row := range data {
			if sampled == sampleSize {
				break
			}
			text := cellAt(row, i)
			if text == "" {
				continue
			}
			sampled++

			score += float64(len(text)) / 100
			lower := strings.ToLower(text)
			for _, ind := range contentIndicators {
				if strings.Contains(lower, ind) {
					score += 2
				}
			}
		}

		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	return best
}

// parseOptionalInt coerces a numeric cell. An absent column or empty cell
// yields nil; a non-empty cell that is not an integer fails the row.
func parseOptionalInt(row []string, col int, rowNum int, field string) (*int, *Warning) {
	raw := cellAt(row, col)
	if raw == "" {
		return nil, nil
	}

	// Spreadsheet tools often emit integers as "3.0".
	raw = strings.TrimSuffix(raw, ".0")
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &Warning{Row: rowNum, Message: "invalid " + field + " value: " + raw}
	}
	return &v, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
