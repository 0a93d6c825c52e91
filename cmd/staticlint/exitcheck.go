package main

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

// Analyzer запрещает panic, os.Exit и log.Fatal* вне функции main пакета main.
// Внутри библиотечных пакетов ошибки должны возвращаться вызывающему,
// а завершение процесса принадлежит только точке входа.
var Analyzer = &analysis.Analyzer{
	Name: "exitcheck",
	Doc:  "проверяет использование panic, os.Exit и log.Fatal вне функции main пакета main",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			if ident, ok := call.Fun.(*ast.Ident); ok {
				if ident.Name == "panic" {
					pass.Reportf(call.Pos(), "использование встроенной функции panic")
				}
				return true
			}

			pkgName, funcName, ok := selectorCall(call)
			if !ok {
				return true
			}

			if isExitCall(pkgName, funcName) && !isInMainFunc(pass, call) {
				pass.Reportf(call.Pos(),
					"вызов %s.%s вне функции main пакета main",
					pkgName, funcName)
			}

			return true
		})
	}

	return nil, nil
}

func selectorCall(call *ast.CallExpr) (pkgName, funcName string, ok bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", "", false
	}

	x, ok := sel.X.(*ast.Ident)
	if !ok {
		return "", "", false
	}

	return x.Name, sel.Sel.Name, true
}

func isExitCall(pkgName, funcName string) bool {
	if pkgName == "os" && funcName == "Exit" {
		return true
	}
	return pkgName == "log" &&
		(funcName == "Fatal" || funcName == "Fatalf" || funcName == "Fatalln")
}

// isInMainFunc проверяет, находится ли вызов внутри функции main пакета main
func isInMainFunc(pass *analysis.Pass, call *ast.CallExpr) bool {
	if pass.Pkg.Name() != "main" {
		return false
	}

	for _, file := range pass.Files {
		var inMain bool
		ast.Inspect(file, func(n ast.Node) bool {
			funcDecl, ok := n.(*ast.FuncDecl)
			if !ok {
				return true
			}

			if funcDecl.Name.Name == "main" && funcDecl.Recv == nil {
				if funcDecl.Pos() <= call.Pos() && call.End() <= funcDecl.End() {
					inMain = true
					return false
				}
			}
			return true
		})
		if inMain {
			return true
		}
	}

	return false
}
