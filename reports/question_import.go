package reports

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anjiri1684/institute_manager/services"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/xuri/excelize/v2"
)

var ErrInvalidSheet = errors.New("question sheet must have a header row and at least one question")

var questionColumns = []string{"question_text", "marks", "option_a", "option_b", "option_c", "option_d", "correct_option"}

// ParseQuestions reads the first worksheet of an xlsx upload. Columns are
// matched by header name, so their order in the sheet does not matter.
func ParseQuestions(data []byte) ([]services.QuestionInput, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidSheet
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrInvalidSheet
	}

	columns := make(map[string]int)
	for i, col := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range questionColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var questions []services.QuestionInput
	for i, row := range rows[1:] {
		get := func(col string) string {
			if idx := columns[col]; idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		if get("question_text") == "" {
			continue
		}

		marks, err := strconv.ParseFloat(get("marks"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid marks %q", i+2, get("marks"))
		}
		questions = append(questions, services.QuestionInput{
			QuestionText:  get("question_text"),
			Marks:         utils.FlexFloat(marks),
			OptionA:       get("option_a"),
			OptionB:       get("option_b"),
			OptionC:       get("option_c"),
			OptionD:       get("option_d"),
			CorrectOption: get("correct_option"),
		})
	}
	if len(questions) == 0 {
		return nil, ErrInvalidSheet
	}
	return questions, nil
}
