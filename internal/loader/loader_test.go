package loader

import (
	"strings"
	"testing"
	"unicode/utf8"

	"psfinder_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Problem Title,Problem Description,Domain,Technology,min_team_size,max_team_size,duration,Level
Traffic App,Build a traffic congestion prediction app,transport,"Python, TensorFlow and SQL",2,5,8,Medium
Health Portal,Develop a patient record portal,healthcare,"Java; Spring & React",3,6,12,Hard
`

func TestParseWellFormedCSV(t *testing.T) {
	l := New(",")

	result, err := l.Parse("problems.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)

	first := result.Records[0]
	assert.Equal(t, 1, first.RowIndex)
	assert.Equal(t, "Traffic App", first.Title)
	assert.Equal(t, "transport", first.Category)
	assert.Equal(t, []string{"python", "tensorflow", "sql"}, first.RequiredSkills)
	require.NotNil(t, first.MinTeamSize)
	assert.Equal(t, 2, *first.MinTeamSize)
	require.NotNil(t, first.EstimatedDurationWeeks)
	assert.Equal(t, 8, *first.EstimatedDurationWeeks)
	assert.Equal(t, "Medium", first.DifficultyLevel)

	// Joiners like "and", "&" and ";" all act as delimiters.
	assert.Equal(t, []string{"java", "spring", "react"}, result.Records[1].RequiredSkills)
}

func TestParseBadNumericRowSkippedWithWarning(t *testing.T) {
	csvData := `Problem Title,Problem Description,Technology,min_team_size
Good One,Create an inventory tracker,Go,2
Bad One,Build a chatbot,Python,two
Good Two,Design a logistics dashboard,React,3
`
	l := New(",")

	result, err := l.Parse("problems.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 2, result.Warnings[0].Row)
	assert.Contains(t, result.Warnings[0].Message, "min_team_size")
}

func TestParseMissingDescriptionRowSkipped(t *testing.T) {
	csvData := `Problem Title,Problem Description,Technology
With Text,Implement a booking system,Python
No Text,,Java
`
	l := New(",")

	result, err := l.Parse("problems.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 2, result.Warnings[0].Row)
}

func TestParseDuplicateSkillsCollapse(t *testing.T) {
	csvData := `Problem Description,Technology
Implement a payment gateway,"Python, python , PYTHON, Go"
`
	l := New(",")

	result, err := l.Parse("problems.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, []string{"python", "go"}, result.Records[0].RequiredSkills)
}

func TestParseTitleDerivedFromDescription(t *testing.T) {
	csvData := `Problem Description,Technology
Create a telemedicine platform. It must support video calls.,Python
`
	l := New(",")

	result, err := l.Parse("problems.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Create a telemedicine platform", result.Records[0].Title)
}

func TestParseDescriptionColumnGuessedFromContent(t *testing.T) {
	csvData := `Col A,Col B
x,Implement a system to create and develop a data pipeline with reporting functionality
y,Design and build a recommendation feature for an e-commerce requirement
`
	l := New(",")

	result, err := l.Parse("problems.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}

func TestParseNoUsableColumnsFails(t *testing.T) {
	csvData := `a,b
1,2
3,4
`
	l := New(",")

	_, err := l.Parse("problems.csv", strings.NewReader(csvData))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMalformedInput, appErr.Code)
}

func TestParseUnsupportedExtension(t *testing.T) {
	l := New(",")

	_, err := l.Parse("problems.pdf", strings.NewReader("whatever"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestParseEmptyFileFails(t *testing.T) {
	l := New(",")

	_, err := l.Parse("problems.csv", strings.NewReader(""))
	require.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Problem Title", "Problem Description", "Technology"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Smart Grid", "Develop a smart energy grid monitor", "Go, Kafka"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	l := New(",")
	result, err := l.Parse("problems.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Smart Grid", result.Records[0].Title)
	assert.Equal(t, []string{"go", "kafka"}, result.Records[0].RequiredSkills)
}

func TestParseXLSUsesBIFFReader(t *testing.T) {
	// An OOXML zip under a .xls name must go through the BIFF reader and
	// fail there, not be parsed as .xlsx by extension accident.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Problem Title", "Problem Description"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Smart Grid", "Develop a smart energy grid monitor"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	l := New(",")
	_, err = l.Parse("problems.xls", buf)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "could not read file")
}

func TestParseConfiguredExtensions(t *testing.T) {
	l := New(",", ".csv")

	_, err := l.Parse("problems.xlsx", strings.NewReader("whatever"))
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)

	result, err := l.Parse("problems.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}

func TestDeriveTitleTruncatesOnRunes(t *testing.T) {
	title := deriveTitle(strings.Repeat("é", 120))

	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 100, utf8.RuneCountInString(title))
	assert.True(t, strings.HasSuffix(title, "..."))
}
