package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want ID
	}{
		{"Grammar.jj", JavaCC},
		{"dir/Tree.JJT", JJTree},
		{"visitor.jtb", JTB},
		{"src/Main.java", Java},
		{"README.md", Plain},
		{"Makefile", Plain},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := Detect(tc.path); got != tc.want {
				t.Fatalf("Detect(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestDetectWithContent(t *testing.T) {
	tests := []struct {
		name string
		path string
		head string
		want ID
	}{
		{"extension wins", "a.jjt", "package x;", JJTree},
		{"options block", "grammar.txt", "// header\n\noptions {\n", JavaCC},
		{"parser begin after javadoc", "g", "/**\n * Calc\n */\nPARSER_BEGIN(Calc)", JavaCC},
		{"java source", "Main", "package demo;\n", Java},
		{"prose", "notes", "hello world\noptions", Plain},
		{"empty", "x", "", Plain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectWithContent(tc.path, tc.head); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseAndIsGrammar(t *testing.T) {
	id, ok := Parse(" JJTree ")
	if !ok || id != JJTree || !id.IsGrammar() {
		t.Fatalf("Parse(JJTree) = %q, %v", id, ok)
	}
	if Java.IsGrammar() {
		t.Fatalf("java is not a grammar kind")
	}
	if _, ok := Parse("cobol"); ok {
		t.Fatalf("expected cobol to be rejected")
	}
}
