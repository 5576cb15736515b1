// Package source extracts function signatures from Go source files so
// declared functions can be checked against signature shapes without
// importing the code that declares them.
package source

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/gnoverse/sigmatch"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Function is one declared function with its extracted signature.
type Function struct {
	Name string
	File string
	Line int
	Sig  sigmatch.Signature
}

// ScanFile parses a single Go file and returns every declared function
// and method, in declaration order.
func ScanFile(path string) ([]Function, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var fns []Function
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		pos := fset.Position(fn.Pos())
		fns = append(fns, Function{
			Name: fn.Name.Name,
			File: pos.Filename,
			Line: pos.Line,
			Sig:  fromFieldList(fn.Type.Params),
		})
	}
	return fns, nil
}

// fromFieldList converts an AST parameter list into a Signature. Go
// declares neither defaulted nor named-only parameters, so every fixed
// parameter is a required positional one and a trailing ...T packs
// surplus positional arguments.
func fromFieldList(params *ast.FieldList) sigmatch.Signature {
	if params == nil {
		return nil
	}

	var sig sigmatch.Signature
	for _, field := range params.List {
		_, variadic := field.Type.(*ast.Ellipsis)

		// a field with no names still declares one parameter: func(int)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			name := ""
			if i < len(field.Names) {
				name = field.Names[i].Name
			}
			kind := sigmatch.KindPositional
			if variadic {
				kind = sigmatch.KindVarPositional
			}
			sig = append(sig, sigmatch.Param{Name: name, Kind: kind})
		}
	}
	return sig
}

// ScanDir walks root and extracts functions from every .go file, fanning
// the parsing out over a bounded worker pool. Files that fail to parse
// are logged and skipped. The result is sorted by file, then line.
func ScanDir(ctx context.Context, logger *zap.Logger, root string, showProgress bool) ([]Function, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".go" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(root),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount())
	}

	resultChan := make(chan []Function, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	var wg sync.WaitGroup
	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				return
			default:
			}

			fns, err := ScanFile(path)
			if err != nil {
				if logger != nil {
					logger.Error("Error scanning file", zap.String("file", path), zap.Error(err))
				}
			} else {
				resultChan <- fns
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}(path)
	}
	wg.Wait()
	close(resultChan)

	var fns []Function
	for batch := range resultChan {
		fns = append(fns, batch...)
	}
	sort.Slice(fns, func(i, j int) bool {
		if fns[i].File != fns[j].File {
			return fns[i].File < fns[j].File
		}
		return fns[i].Line < fns[j].Line
	})
	return fns, ctx.Err()
}

// ScanPath dispatches to ScanFile or ScanDir depending on what path is.
func ScanPath(ctx context.Context, logger *zap.Logger, path string, showProgress bool) ([]Function, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if info.IsDir() {
		return ScanDir(ctx, logger, path, showProgress)
	}
	return ScanFile(path)
}
