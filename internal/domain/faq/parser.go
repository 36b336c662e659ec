package faq

import "strings"

const (
	fieldSeparator = ','
	quoteChar      = '"'

	defaultQuestionColumn = 0
	defaultAnswerColumn   = 1
)

// ParseRows splits comma separated text into rows of fields. Quoted fields may
// contain separators and line breaks; inside quotes a doubled quote yields a
// literal quote. Outside quotes every quote toggles quoting, so "" is empty.
// CR, LF and CRLF all terminate a row.
func ParseRows(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == quoteChar && inQuotes && i+1 < len(text) && text[i+1] == quoteChar:
			field.WriteByte(quoteChar)
			i++
		case ch == quoteChar:
			inQuotes = !inQuotes
		case ch == fieldSeparator && !inQuotes:
			row = append(row, field.String())
			field.Reset()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			field.WriteByte(ch)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}
	return rows
}

// ParseRecords parses a question/answer table. The first row is the header;
// tables without at least one data row produce an empty set.
func ParseRecords(text string) RecordSet {
	rows := ParseRows(text)
	if len(rows) < 2 {
		return RecordSet{}
	}

	qIdx, aIdx := resolveColumns(rows[0])
	records := make(RecordSet, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			Question: Normalize(cell(row, qIdx)),
			Answer:   cell(row, aIdx),
		})
	}
	return records
}

func resolveColumns(header []string) (question, answer int) {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(h)
	}
	question = findColumn(lowered, "question")
	if question < 0 {
		question = defaultQuestionColumn
	}
	answer = findColumn(lowered, "answer")
	if answer < 0 {
		answer = defaultAnswerColumn
	}
	return question, answer
}

// findColumn returns -1 when no header cell contains needle.
func findColumn(header []string, needle string) int {
	for i, h := range header {
		if strings.Contains(h, needle) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
