package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// ZapKVAnalyzer проверяет пары ключ-значение в структурированных вызовах SugaredLogger:
// после сообщения должно идти чётное число аргументов, а на месте ключей стоять строки.
var ZapKVAnalyzer = &analysis.Analyzer{
	Name: "zapkv",
	Doc:  "проверяет пары ключ-значение в вызовах Debugw, Infow, Warnw, Errorw и Fatalw",
	Run:  runZapKV,
}

var kvMethods = map[string]bool{
	"Debugw":  true,
	"Infow":   true,
	"Warnw":   true,
	"Errorw":  true,
	"DPanicw": true,
	"Panicw":  true,
	"Fatalw":  true,
}

func runZapKV(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || call.Ellipsis.IsValid() {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !kvMethods[sel.Sel.Name] {
				return true
			}
			if recv, ok := zapReceiver(pass, sel); !ok || recv != "SugaredLogger" {
				return true
			}
			if len(call.Args) == 0 {
				return true
			}

			kv := call.Args[1:]
			if len(kv)%2 != 0 {
				pass.Reportf(call.Pos(), "нечётное число аргументов ключ-значение в вызове %s", sel.Sel.Name)
			}

			for i := 0; i < len(kv); i += 2 {
				if !isString(pass.TypesInfo.TypeOf(kv[i])) {
					pass.Reportf(kv[i].Pos(), "ключ №%d в вызове %s должен быть строкой", i/2+1, sel.Sel.Name)
				}
			}
			return true
		})
	}

	return nil, nil
}

func isString(t types.Type) bool {
	if t == nil {
		return false
	}
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}
