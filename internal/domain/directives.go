package domain

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode"
)

type directive string

const (
	directiveNone directive = ""
	// directiveIgnore keeps a routine, a call site or a whole file out of the cache.
	directiveIgnore directive = "smartcache:ignore"
	// directiveFunctional marks a routine functional without inspecting its body.
	directiveFunctional directive = "smartcache:functional"
)

func parseDirective(commentText string) directive {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	}

	for _, d := range []directive{directiveIgnore, directiveFunctional} {
		rest, ok := strings.CutPrefix(s, string(d))
		if ok && (rest == "" || unicode.IsSpace(rune(rest[0]))) {
			return d
		}
	}

	return directiveNone
}

// directiveOf reads the doc comment of fn. Ignore wins over functional.
func directiveOf(fn *ast.FuncDecl) directive {
	if fn == nil || fn.Doc == nil {
		return directiveNone
	}

	found := directiveNone

	for _, c := range fn.Doc.List {
		switch parseDirective(c.Text) {
		case directiveIgnore:
			return directiveIgnore
		case directiveFunctional:
			found = directiveFunctional
		}
	}

	return found
}

type directiveIndex struct {
	file bool
	line map[int]struct{}
}

func (idx directiveIndex) ignores(line int) bool {
	if idx.file {
		return true
	}

	_, ok := idx.line[line]

	return ok
}

// buildDirectiveIndex collects ignore directives placed above the package
// clause and next to statements. Doc comments of routines are left to
// directiveOf.
func buildDirectiveIndex(fset *token.FileSet, file *ast.File, content []byte) directiveIndex {
	idx := directiveIndex{line: map[int]struct{}{}}
	if fset == nil || file == nil {
		return idx
	}

	docs := map[*ast.CommentGroup]struct{}{}

	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Doc != nil {
			docs[fd.Doc] = struct{}{}
		}
	}

	lineStarts := computeLineStarts(content)

	for _, group := range file.Comments {
		if _, ok := docs[group]; ok {
			continue
		}

		for _, c := range group.List {
			if parseDirective(c.Text) != directiveIgnore {
				continue
			}

			if group.End() < file.Package {
				idx.file = true
				continue
			}

			pos := fset.PositionFor(c.Slash, true)
			if pos.Line <= 0 {
				continue
			}

			target := pos.Line
			if isLeadingComment(pos.Line, pos.Offset, lineStarts, content) {
				target = pos.Line + 1
			}

			idx.line[target] = struct{}{}
		}
	}

	return idx
}

func computeLineStarts(content []byte) []int {
	starts := []int{0}

	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

func isLeadingComment(line int, slashOffset int, lineStarts []int, content []byte) bool {
	if line <= 0 || line > len(lineStarts) {
		return false
	}

	start := lineStarts[line-1]
	if slashOffset < start || slashOffset > len(content) {
		return false
	}

	for _, b := range content[start:slashOffset] {
		if !unicode.IsSpace(rune(b)) {
			return false
		}
	}

	return true
}
