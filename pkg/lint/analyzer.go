// Package lint provides static analysis checks for the covergroup API.
//
// This analyzer detects common mistakes when building covergroup models:
//   - Empty string literals passed to model.New, bins.NewCoverpoint or bins.NewCross
//   - Discarded errors from AddCoverpoint, Finalize, Sample and SetTarget
//
// Usage:
//
//	go install github.com/example/covergroup-lite/cmd/cglint@latest
//	cglint ./...
package lint

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer is the covergroup lint analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "cglint",
	Doc:      "checks for common covergroup API mistakes",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// constructors maps package name to the constructors whose first argument is a name.
var constructors = map[string]map[string]bool{
	"model": {"New": true},
	"bins":  {"NewCoverpoint": true, "NewCross": true},
}

// modulePath prefixes the import paths of the covergroup packages.
const modulePath = "github.com/example/covergroup-lite/covergroup/"

// errorMethods are calls whose error result must not be dropped.
var errorMethods = map[string]bool{
	"AddCoverpoint": true,
	"Finalize":      true,
	"Sample":        true,
	"SetTarget":     true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{(*ast.CallExpr)(nil), (*ast.ExprStmt)(nil)}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.CallExpr:
			if sel, ok := n.Fun.(*ast.SelectorExpr); ok {
				checkConstructor(pass, n, sel)
			}
		case *ast.ExprStmt:
			checkDiscardedError(pass, n)
		}
	})

	return nil, nil
}

// checkConstructor reports model.New("") and friends. The package is
// resolved through the type checker, so aliased imports are caught and
// unrelated packages sharing a name are not.
func checkConstructor(pass *analysis.Pass, call *ast.CallExpr, sel *ast.SelectorExpr) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return
	}
	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return
	}
	pkg := covergroupPackage(pkgName.Imported().Path())
	names, ok := constructors[pkg]
	if !ok || !names[sel.Sel.Name] || len(call.Args) == 0 {
		return
	}

	if lit, ok := call.Args[0].(*ast.BasicLit); ok && lit.Kind == token.STRING {
		if lit.Value == `""` || lit.Value == "``" {
			pass.Reportf(lit.Pos(), "%s.%s called with empty name", pkg, sel.Sel.Name)
		}
	}
}

// covergroupPackage returns the short name of a covergroup package import
// path, or "" for any other package. Bare paths are accepted for GOPATH-style
// test stubs.
func covergroupPackage(path string) string {
	name := strings.TrimPrefix(path, modulePath)
	if _, ok := constructors[name]; ok {
		return name
	}
	return ""
}

// checkDiscardedError reports statements like cg.Sample() whose error result is dropped.
func checkDiscardedError(pass *analysis.Pass, stmt *ast.ExprStmt) {
	call, ok := stmt.X.(*ast.CallExpr)
	if !ok {
		return
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || !errorMethods[sel.Sel.Name] {
		return
	}
	if !returnsError(pass.TypesInfo.TypeOf(call)) {
		return
	}
	pass.Reportf(call.Pos(), "error returned by %s is discarded", sel.Sel.Name)
}

func returnsError(t types.Type) bool {
	if t == nil {
		return false
	}
	if tuple, ok := t.(*types.Tuple); ok {
		if tuple.Len() == 0 {
			return false
		}
		t = tuple.At(tuple.Len() - 1).Type()
	}
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
