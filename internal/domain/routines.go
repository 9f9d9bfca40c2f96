package domain

import (
	"go/ast"
	"go/token"
	"sort"

	m "github.com/mouse-blink/smartcache/internal/model"
)

// Routines maps the name of every top-level routine in file to its
// declaration. Methods, generic functions, init and blank functions are not
// routines. On duplicate names the first declaration wins.
func Routines(file *ast.File) map[string]*ast.FuncDecl {
	routines := make(map[string]*ast.FuncDecl)
	if file == nil {
		return routines
	}

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || !isRoutine(fd) {
			continue
		}

		if _, dup := routines[fd.Name.Name]; !dup {
			routines[fd.Name.Name] = fd
		}
	}

	return routines
}

// RoutineList returns the routines of file in source order.
func RoutineList(fset *token.FileSet, file *ast.File) []m.Routine {
	routines := Routines(file)
	list := make([]m.Routine, 0, len(routines))

	for _, fd := range routines {
		list = append(list, routineOf(fset, fd))
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Line != list[j].Line {
			return list[i].Line < list[j].Line
		}

		return list[i].Name < list[j].Name
	})

	return list
}

func isRoutine(fd *ast.FuncDecl) bool {
	if fd.Recv != nil || fd.Name == nil {
		return false
	}

	if fd.Type.TypeParams != nil && fd.Type.TypeParams.NumFields() > 0 {
		return false
	}

	return fd.Name.Name != "init" && fd.Name.Name != "_"
}

func routineOf(fset *token.FileSet, fd *ast.FuncDecl) m.Routine {
	return m.Routine{
		Name:    fd.Name.Name,
		Line:    lineOf(fset, fd.Pos()),
		Params:  fd.Type.Params.NumFields(),
		Results: fd.Type.Results.NumFields(),
	}
}
