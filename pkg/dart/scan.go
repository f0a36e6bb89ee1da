package dart

import "strings"

// scanResult is the output of the first pass over raw source: cleaned lines
// (comments removed, string contents blanked but quotes kept), directive
// statements with their original string contents, and every string literal
// with its location.
type scanResult struct {
	lines      []cleanLine
	statements []statement
	literals   []literal
	byNum      map[int]int
}

type cleanLine struct {
	num  int
	text string
	// depth is the brace depth at the start of the line.
	depth int
	// endDepth is the brace depth after the line.
	endDepth int
}

type statement struct {
	line int
	// text is the cleaned statement, raw keeps string contents for URI
	// extraction.
	text string
	raw  string
}

type literal struct {
	line  int
	value string
}

func (s *scanResult) lineAt(num int) *cleanLine {
	if i, ok := s.byNum[num]; ok {
		return &s.lines[i]
	}
	return nil
}

type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateString
)

// scan strips comments, blanks string contents, tracks brace depth, and
// records literals. It never fails: malformed input just yields fewer
// extractions, which the analyzer treats conservatively.
func scan(src []byte) *scanResult {
	res := &scanResult{byNum: make(map[int]int)}

	var (
		state      scanState
		quote      byte
		triple     bool
		raw        bool
		cleaned    strings.Builder
		litStart   int
		litVal     strings.Builder
		depth      = 0
		lineNum    = 1
		lineStart  = depth
		blockDepth = 0
	)

	flushLine := func(text string) {
		res.byNum[lineNum] = len(res.lines)
		res.lines = append(res.lines, cleanLine{num: lineNum, text: text, depth: lineStart, endDepth: depth})
		lineNum++
		lineStart = depth
	}

	text := string(src)
	n := len(text)
	for i := 0; i < n; i++ {
		c := text[i]

		if c == '\n' {
			if state == stateLineComment {
				state = stateCode
			}
			if state == stateString && !triple {
				// Unterminated single-line string: bail out of string state.
				state = stateCode
				litVal.Reset()
			}
			flushLine(cleaned.String())
			cleaned.Reset()
			continue
		}

		switch state {
		case stateLineComment:
			// Discard.

		case stateBlockComment:
			if c == '*' && i+1 < n && text[i+1] == '/' {
				i++
				blockDepth--
				if blockDepth <= 0 {
					state = stateCode
				}
			} else if c == '/' && i+1 < n && text[i+1] == '*' {
				// Dart block comments nest.
				i++
				blockDepth++
			}

		case stateString:
			if c == '\\' && !raw && i+1 < n {
				litVal.WriteByte(text[i+1])
				i++
				continue
			}
			if c == quote {
				if triple {
					if i+2 < n && text[i+1] == quote && text[i+2] == quote {
						i += 2
					} else {
						litVal.WriteByte(c)
						continue
					}
				}
				state = stateCode
				cleaned.WriteByte(quote)
				res.literals = append(res.literals, literal{line: litStart, value: litVal.String()})
				litVal.Reset()
				continue
			}
			litVal.WriteByte(c)

		case stateCode:
			switch {
			case c == '/' && i+1 < n && text[i+1] == '/':
				state = stateLineComment
				i++
			case c == '/' && i+1 < n && text[i+1] == '*':
				state = stateBlockComment
				blockDepth = 1
				i++
			case c == '\'' || c == '"':
				raw = i > 0 && text[i-1] == 'r'
				quote = c
				triple = i+2 < n && text[i+1] == c && text[i+2] == c
				if triple {
					i += 2
				}
				state = stateString
				litStart = lineNum
				cleaned.WriteByte(quote)
			case c == '{':
				depth++
				cleaned.WriteByte(c)
			case c == '}':
				if depth > 0 {
					depth--
				}
				cleaned.WriteByte(c)
			default:
				cleaned.WriteByte(c)
			}
		}
	}
	if cleaned.Len() > 0 || len(res.lines) == 0 {
		flushLine(cleaned.String())
	}

	res.collectStatements(string(src))
	return res
}

// collectStatements gathers multi-line directive statements. Cleaned text
// drives recognition; the raw slice keeps URIs intact.
func (s *scanResult) collectStatements(raw string) {
	rawLines := strings.Split(raw, "\n")

	for i := 0; i < len(s.lines); i++ {
		ln := s.lines[i]
		trimmed := strings.TrimSpace(ln.text)
		if !strings.HasPrefix(trimmed, "import ") &&
			!strings.HasPrefix(trimmed, "import'") &&
			!strings.HasPrefix(trimmed, "import\"") &&
			!strings.HasPrefix(trimmed, "export ") &&
			!strings.HasPrefix(trimmed, "part ") {
			continue
		}

		stmt := statement{line: ln.num}
		var cleanParts, rawParts []string
		for j := i; j < len(s.lines); j++ {
			cleanParts = append(cleanParts, s.lines[j].text)
			if idx := s.lines[j].num - 1; idx >= 0 && idx < len(rawLines) {
				rawParts = append(rawParts, rawLines[idx])
			}
			if strings.Contains(s.lines[j].text, ";") {
				i = j
				break
			}
			// Directives are short; give up after a few lines so a missing
			// semicolon cannot swallow the file.
			if j-i > 4 {
				i = j
				break
			}
		}
		stmt.text = strings.TrimSpace(strings.Join(cleanParts, " "))
		stmt.raw = strings.Join(rawParts, " ")
		s.statements = append(s.statements, stmt)
	}
}
