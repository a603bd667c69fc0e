package graphio

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LineContext is a line from a graph file with up to two lines either side.
type LineContext struct {
	LineNumber int
	Lines      []ContextLine
	ErrorMsg   string // set if the file couldn't be read
}

// ContextLine is one numbered line of a LineContext.
type ContextLine struct {
	Number int
	Text   string
	Target bool
}

// GetLineContext reads a file and returns the target line with surrounding context.
func GetLineContext(filePath string, lineNumber int) LineContext {
	result := LineContext{LineNumber: lineNumber}

	file, err := os.Open(filePath)
	if err != nil {
		result.ErrorMsg = fmt.Sprintf("Could not read file: %v", err)
		return result
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		result.ErrorMsg = fmt.Sprintf("Error reading file: %v", err)
		return result
	}

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (file has %d lines)", lineNumber, len(lines))
		return result
	}

	from := max(lineNumber-2, 1)
	to := min(lineNumber+2, len(lines))
	for n := from; n <= to; n++ {
		result.Lines = append(result.Lines, ContextLine{
			Number: n,
			Text:   lines[n-1],
			Target: n == lineNumber,
		})
	}
	return result
}

// String renders the context with the target line marked by "»".
func (c LineContext) String() string {
	if c.ErrorMsg != "" {
		return c.ErrorMsg
	}
	var b strings.Builder
	for _, l := range c.Lines {
		marker := " "
		if l.Target {
			marker = "»"
		}
		fmt.Fprintf(&b, "%s %4d  %s\n", marker, l.Number, l.Text)
	}
	return b.String()
}
