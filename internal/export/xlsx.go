// Package export renders attempt summaries to files a teacher can hand out.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/quizforge/quiz-core/internal/summary"
)

// SummaryToExcel writes an attempt summary as an XLSX workbook: an overview
// block followed by one row per question, in quiz order.
func SummaryToExcel(quizTitle string, s summary.AttemptSummary) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Overview block
	overview := [][]interface{}{
		{"Quiz", quizTitle},
		{"Score", s.Score},
		{"Percentage", fmt.Sprintf("%.1f%%", s.Percentage)},
		{"Total Questions", s.TotalQuestions},
		{"Graded Questions", s.GradedQuestions},
		{"Incorrect Answers", s.IncorrectAnswers},
		{"Pending Review", s.PendingReview},
	}
	for rowIndex, row := range overview {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Per-question rows
	headerRow := len(overview) + 2
	headers := []string{"#", "Type", "Prompt", "Status", "Your Answer", "Correct Answer", "Expected"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range s.Questions {
		row := []interface{}{
			rowIndex + 1,
			string(question.Question.Type),
			question.Question.Prompt,
			string(question.Status),
			question.UserAnswer,
			question.CorrectAnswer,
			question.Expected,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, headerRow+1+rowIndex)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
