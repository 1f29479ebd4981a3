package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

const zapPkgPath = "go.uber.org/zap"

// ExitCheckAnalyzer запрещает аварийное завершение процесса вне main.main:
// остальной код возвращает ошибки, чтобы сервер успел дописать очередь в хранилище.
var ExitCheckAnalyzer = &analysis.Analyzer{
	Name: "exitcheck",
	Doc:  "проверяет использование panic, os.Exit, log.Fatal и zap Fatal вне main пакета main",
	Run:  runExitCheck,
}

func runExitCheck(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			if ident, ok := call.Fun.(*ast.Ident); ok {
				if ident.Name == "panic" && isBuiltin(pass, ident) {
					pass.Reportf(call.Pos(), "использование встроенной функции panic")
				}
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			name, ok := exitCallName(pass, sel)
			if ok && !isInMainFunc(pass, call) {
				pass.Reportf(call.Pos(), "вызов %s вне функции main пакета main", name)
			}
			return true
		})
	}

	return nil, nil
}

// exitCallName распознаёт log.Fatal*, os.Exit и методы Fatal* логгеров zap.
func exitCallName(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	funcName := sel.Sel.Name

	if x, ok := sel.X.(*ast.Ident); ok {
		if pkgName, ok := pass.TypesInfo.Uses[x].(*types.PkgName); ok {
			switch path := pkgName.Imported().Path(); {
			case path == "log" && isFatalFunc(funcName):
				return "log." + funcName, true
			case path == "os" && funcName == "Exit":
				return "os.Exit", true
			}
			return "", false
		}
	}

	if recv, ok := zapReceiver(pass, sel); ok && isFatalFunc(funcName) {
		return recv + "." + funcName, true
	}
	return "", false
}

func isFatalFunc(name string) bool {
	switch name {
	case "Fatal", "Fatalf", "Fatalln", "Fatalw":
		return true
	}
	return false
}

func isBuiltin(pass *analysis.Pass, ident *ast.Ident) bool {
	_, ok := pass.TypesInfo.Uses[ident].(*types.Builtin)
	return ok
}

// zapReceiver возвращает имя типа получателя, если sel — метод *zap.Logger или *zap.SugaredLogger.
func zapReceiver(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	s, ok := pass.TypesInfo.Selections[sel]
	if !ok || s.Kind() != types.MethodVal {
		return "", false
	}

	t := s.Recv()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return "", false
	}

	obj := named.Obj()
	if obj.Pkg() == nil || !strings.HasSuffix(obj.Pkg().Path(), zapPkgPath) {
		return "", false
	}
	return obj.Name(), true
}

// isInMainFunc проверяет, находится ли вызов внутри функции main пакета main
func isInMainFunc(pass *analysis.Pass, call *ast.CallExpr) bool {
	if pass.Pkg.Name() != "main" {
		return false
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Name.Name != "main" || funcDecl.Recv != nil {
				continue
			}
			if funcDecl.Pos() <= call.Pos() && call.End() <= funcDecl.End() {
				return true
			}
		}
	}

	return false
}
