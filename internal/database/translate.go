package database

import (
	"regexp"
	"strconv"
	"strings"
)

// pgTimestamp renders the current UTC time in the layout SQLite's
// datetime('now') and CURRENT_TIMESTAMP produce.
const pgTimestamp = `to_char(NOW() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')`

var (
	datetimeNowRe   = regexp.MustCompile(`(?i)datetime\(\s*'now'\s*\)`)
	serialPKRe      = regexp.MustCompile(`(?i)\bINTEGER\s+PRIMARY\s+KEY\s+AUTOINCREMENT\b`)
	autoincrementRe = regexp.MustCompile(`(?i)\s*\bAUTOINCREMENT\b`)
	currentTSRe     = regexp.MustCompile(`(?i)\bCURRENT_TIMESTAMP\b`)
	returningRe     = regexp.MustCompile(`(?i)\bRETURNING\b`)
)

// TranslateForPostgres rewrites a statement written for the embedded engine
// into the server dialect. Quoted literals, quoted identifiers and comments
// are left untouched.
func TranslateForPostgres(statement string) string {
	out := datetimeNowRe.ReplaceAllString(statement, pgTimestamp)

	placeholder := 0
	return rewriteUnquoted(out, func(segment string) string {
		segment = serialPKRe.ReplaceAllString(segment, "SERIAL PRIMARY KEY")
		segment = autoincrementRe.ReplaceAllString(segment, "")
		segment = currentTSRe.ReplaceAllString(segment, pgTimestamp)
		if !strings.Contains(segment, "?") {
			return segment
		}
		var b strings.Builder
		for _, r := range segment {
			if r == '?' {
				placeholder++
				b.WriteString("$" + strconv.Itoa(placeholder))
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	})
}

// hasReturning reports whether the statement already asks for returned rows.
func hasReturning(statement string) bool {
	found := false
	rewriteUnquoted(statement, func(segment string) string {
		if returningRe.MatchString(segment) {
			found = true
		}
		return segment
	})
	return found
}

// withReturning appends a RETURNING clause for column.
func withReturning(statement, column string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(statement), "; \t\n")
	return trimmed + " RETURNING " + column
}

// rewriteUnquoted applies fn to every run of text outside single-quoted
// literals, double-quoted identifiers and comments.
func rewriteUnquoted(sql string, fn func(string) string) string {
	var out, plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			out.WriteString(fn(plain.String()))
			plain.Reset()
		}
	}

	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case c == '\'' || c == '"':
			flush()
			end := closingQuote(sql, i)
			out.WriteString(sql[i:end])
			i = end
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			flush()
			end := strings.IndexByte(sql[i:], '\n')
			if end < 0 {
				end = len(sql)
			} else {
				end += i
			}
			out.WriteString(sql[i:end])
			i = end
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			flush()
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				end = len(sql)
			} else {
				end += i + 4
			}
			out.WriteString(sql[i:end])
			i = end
		default:
			plain.WriteByte(c)
			i++
		}
	}
	flush()
	return out.String()
}

// closingQuote returns the index just past the quote that closes the one at
// start. A doubled quote is an escaped quote.
func closingQuote(sql string, start int) int {
	quote := sql[start]
	for i := start + 1; i < len(sql); i++ {
		if sql[i] != quote {
			continue
		}
		if i+1 < len(sql) && sql[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(sql)
}
