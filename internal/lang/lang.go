// Package lang maps file names to the input kinds jjcolor understands.
package lang

import (
	"path/filepath"
	"strings"
)

type ID string

const (
	Plain  ID = "plain"
	JavaCC ID = "javacc"
	JJTree ID = "jjtree"
	JTB    ID = "jtb"
	Java   ID = "java"
)

var extMap = map[string]ID{
	".jj":   JavaCC,
	".jjt":  JJTree,
	".jtb":  JTB,
	".java": Java,
}

// IsGrammar reports whether id goes through the grammar classifier.
func (id ID) IsGrammar() bool {
	return id == JavaCC || id == JJTree || id == JTB
}

func Detect(path string) ID {
	ext := strings.ToLower(filepath.Ext(filepath.Base(path)))
	if id, ok := extMap[ext]; ok {
		return id
	}
	return Plain
}

// DetectWithContent falls back to sniffing the start of the file when the
// name says nothing: grammar files open with an options block or
// PARSER_BEGIN, possibly after comments.
func DetectWithContent(path string, head string) ID {
	if id := Detect(path); id != Plain {
		return id
	}
	for _, line := range strings.Split(head, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "//"), strings.HasPrefix(line, "/*"), strings.HasPrefix(line, "*"):
			continue
		case strings.HasPrefix(line, "PARSER_BEGIN"), strings.HasPrefix(line, "options"):
			return JavaCC
		case strings.HasPrefix(line, "package "), strings.HasPrefix(line, "import "):
			return Java
		}
		return Plain
	}
	return Plain
}

// Parse accepts an ID name for the --lang flag.
func Parse(name string) (ID, bool) {
	id := ID(strings.ToLower(strings.TrimSpace(name)))
	switch id {
	case Plain, JavaCC, JJTree, JTB, Java:
		return id, true
	}
	return Plain, false
}
