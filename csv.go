// CSV export for question banks.
//
// One row per question: number, text, then up to five answer/point
// pairs. Fields containing commas, quotes or newlines are quoted with
// doubled internal quotes. A combined document concatenates both banks
// under section marker lines.

package main

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	csvHeader      = "Question Number,Question,Answer 1,Points 1,Answer 2,Points 2,Answer 3,Points 3,Answer 4,Points 4,Answer 5,Points 5"
	csvAnswerSlots = 5

	regularSectionMarker   = "===REGULAR QUESTIONS==="
	fastMoneySectionMarker = "===FAST MONEY QUESTIONS==="
)

func escapeCSVField(field string) string {
	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

func questionRow(number int, text string, answers []Answer) string {
	row := make([]string, 0, 2+csvAnswerSlots*2)
	row = append(row, strconv.Itoa(number), escapeCSVField(text))

	for i := 0; i < csvAnswerSlots; i++ {
		if i < len(answers) {
			row = append(row, escapeCSVField(answers[i].Text), strconv.Itoa(answers[i].Points))
		} else {
			row = append(row, "", "")
		}
	}

	return strings.Join(row, ",")
}

// ExportQuestionsCSV renders the regular bank as a CSV document.
func ExportQuestionsCSV(questions []Question) string {
	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for i, q := range questions {
		b.WriteString(questionRow(i+1, q.Text, q.Answers) + "\n")
	}
	return b.String()
}

// ExportFastMoneyCSV renders the fast money bank as a CSV document.
func ExportFastMoneyCSV(questions []FastMoneyQuestion) string {
	var b strings.Builder
	b.WriteString(csvHeader + "\n")
	for i, q := range questions {
		answers := make([]Answer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = Answer{Text: a.Text, Points: a.Points}
		}
		b.WriteString(questionRow(i+1, q.Text, answers) + "\n")
	}
	return b.String()
}

// ExportCombinedCSV renders both banks in one document, each under its
// section marker. Empty banks are omitted entirely.
func ExportCombinedCSV(questions []Question, fastMoney []FastMoneyQuestion) string {
	var b strings.Builder

	if len(questions) > 0 {
		b.WriteString(regularSectionMarker + "\n")
		b.WriteString(ExportQuestionsCSV(questions))
		b.WriteString("\n")
	}

	if len(fastMoney) > 0 {
		b.WriteString(fastMoneySectionMarker + "\n")
		b.WriteString(ExportFastMoneyCSV(fastMoney))
	}

	return b.String()
}

// splitCSVLine parses one CSV row honoring the quoting rule used by
// the exporter.
func splitCSVLine(line string) ([]string, error) {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes:
			if ch == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteByte(ch)
			}
		case ch == '"':
			if field.Len() != 0 {
				return nil, fmt.Errorf("unexpected quote at column %d", i)
			}
			inQuotes = true
		case ch == ',':
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in row %q", line)
	}

	fields = append(fields, field.String())
	return fields, nil
}

// ParseQuestionsCSV reverses ExportQuestionsCSV. IDs are assigned from
// the question number column; answers keep their exported order.
func ParseQuestionsCSV(doc string) ([]Question, error) {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var questions []Question
	sawHeader := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !sawHeader {
			if line != csvHeader {
				return nil, fmt.Errorf("unexpected header row %q", line)
			}
			sawHeader = true
			continue
		}

		fields, err := splitCSVLine(line)
		if err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("too few fields in row %q", line)
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("bad question number %q: %w", fields[0], err)
		}

		q := Question{ID: id, Text: fields[1]}
		for i := 2; i+1 < len(fields); i += 2 {
			text := fields[i]
			if text == "" {
				continue
			}
			points := 0
			if fields[i+1] != "" {
				points, err = strconv.Atoi(fields[i+1])
				if err != nil {
					return nil, fmt.Errorf("bad points %q: %w", fields[i+1], err)
				}
			}
			q.Answers = append(q.Answers, Answer{Text: text, Points: points})
		}

		questions = append(questions, q)
	}

	if !sawHeader {
		return nil, fmt.Errorf("missing header row")
	}

	return questions, nil
}
