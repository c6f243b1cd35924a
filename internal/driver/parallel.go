package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tci/internal/ast"
	"tci/internal/buildpipeline"
	"tci/internal/diag"
	"tci/internal/dialect"
	"tci/internal/lexer"
	"tci/internal/observ"
	"tci/internal/parser"
	"tci/internal/source"
	"tci/internal/token"
)

// TokenizeDirResult — токены одного файла каталожного прогона.
// У нечитаемого файла токенов нет, а причина лежит в Bag.
type TokenizeDirResult struct {
	Path      string // относительно каталога, прямые слэши
	File      source.FileID
	Tokens    []token.Token
	Bag       *diag.Bag
	FromCache bool
}

// ParseDirResult — AST первой фазы одного файла каталожного прогона.
type ParseDirResult struct {
	Path     string
	File     source.FileID
	Interner *source.Interner
	Builder  *ast.Builder
	AST      ast.FileID
	Bag      *diag.Bag
}

// CheckDirResult — полный результат проверки одного файла.
type CheckDirResult struct {
	Path     string
	File     source.FileID
	Interner *source.Interner
	Builder  *ast.Builder
	AST      ast.FileID
	Globals  *parser.Globals
	Bag      *diag.Bag
}

// CheckDirOutput собирает каталожную проверку целиком.
type CheckDirOutput struct {
	FileSet *source.FileSet
	Results []CheckDirResult
	Timing  *observ.Timer // слитые пофайловые таймеры; nil без Timings
}

// ListFiles collects every .c file under dir, sorted by path.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".c") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir tokenizes every .c file under dir in parallel. The
// shared FileSet is preloaded serially and read-only afterwards;
// каждый воркер работает со своим интернером — файлы независимы.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int, cache *DiskCache) (*source.FileSet, []TokenizeDirResult, error) {
	paths, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fset := source.NewFileSetWithBase(dir)
	ids, loadErrs := preload(fset, paths)
	names := displayNames(paths, dir)

	results := make([]TokenizeDirResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(jobs, len(paths)))
	for i := range paths {
		g.Go(func(i int) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				bag := diag.NewBag(diagCap(maxDiagnostics))
				res := TokenizeDirResult{Path: names[i], File: ids[i], Bag: bag}
				if loadErrs[i] != nil {
					bag.Add(loadDiag(ids[i], loadErrs[i]))
				} else {
					file := fset.Get(ids[i])
					res.Tokens, res.FromCache = tokenizeFile(file, source.NewInterner(), cache)
					reportInvalid(file, res.Tokens, bag)
				}
				results[i] = res
				return nil
			}
		}(i))
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fset, results, nil
}

// ParseDir runs phase one over every .c file under dir in parallel.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseDirResult, error) {
	paths, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fset := source.NewFileSetWithBase(dir)
	ids, loadErrs := preload(fset, paths)
	names := displayNames(paths, dir)

	results := make([]ParseDirResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(jobs, len(paths)))
	for i := range paths {
		g.Go(func(i int) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				bag := diag.NewBag(diagCap(maxDiagnostics))
				res := ParseDirResult{Path: names[i], File: ids[i], Bag: bag}
				if loadErrs[i] != nil {
					bag.Add(loadDiag(ids[i], loadErrs[i]))
				} else {
					file := fset.Get(ids[i])
					res.Interner = source.NewInterner()
					res.Builder = ast.NewBuilder(ast.Hints{})
					lx := lexer.New(file, lexer.Options{Interner: res.Interner})
					res.AST = parser.ParseFile(lx, res.Builder, bag).File
				}
				results[i] = res
				return nil
			}
		}(i))
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fset, results, nil
}

// CheckDir runs the full pipeline over every .c file under dir in
// parallel, reporting per-file progress through sink (может быть nil).
func CheckDir(ctx context.Context, dir string, opts CheckOptions, jobs int, sink buildpipeline.ProgressSink) (*CheckDirOutput, error) {
	paths, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	fset := source.NewFileSetWithBase(dir)

	var total *observ.Timer
	var timers []*observ.Timer
	if opts.Timings {
		total = observ.NewTimer()
		timers = make([]*observ.Timer, len(paths))
	}

	ph := -1
	if total != nil {
		ph = total.Begin("load_files")
	}
	ids, loadErrs := preload(fset, paths)
	if total != nil {
		total.End(ph, fmt.Sprintf("%d files", len(paths)))
	}

	names := displayNames(paths, dir)
	buildpipeline.EmitQueued(sink, names)

	results := make([]CheckDirResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(jobs, len(paths)))
	for i := range paths {
		g.Go(func(i int) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				started := time.Now()
				bag := diag.NewBag(diagCap(opts.MaxDiagnostics))
				res := CheckDirResult{Path: names[i], File: ids[i], Bag: bag}
				if loadErrs[i] != nil {
					bag.Add(loadDiag(ids[i], loadErrs[i]))
					results[i] = res
					buildpipeline.EmitFile(sink, names[i], buildpipeline.StageTokenize, buildpipeline.StatusError, loadErrs[i])
					return nil
				}

				var timer *observ.Timer
				if opts.Timings {
					timer = observ.NewTimer()
					timers[i] = timer
				}
				file := fset.Get(ids[i])
				res.Interner = source.NewInterner()
				res.Builder = ast.NewBuilder(ast.Hints{})

				buildpipeline.EmitFile(sink, names[i], buildpipeline.StageParse, buildpipeline.StatusWorking, nil)
				tp := -1
				if timer != nil {
					tp = timer.Begin("parse")
				}
				evidence := dialect.NewEvidence()
				lx := lexer.New(file, lexer.Options{Interner: res.Interner, DialectEvidence: evidence})
				res.AST = parser.ParseFile(lx, res.Builder, bag).File
				if timer != nil {
					timer.End(tp, "")
				}

				buildpipeline.EmitFile(sink, names[i], buildpipeline.StageResolve, buildpipeline.StatusWorking, nil)
				if timer != nil {
					tp = timer.Begin("resolve")
				}
				res.Globals = parser.CollectGlobals(res.Builder, res.AST, bag, res.Interner)
				parser.ResolveBodies(file, res.Builder, res.AST, res.Globals, bag, res.Interner)
				emitAlienHint(bag, evidence)
				if timer != nil {
					timer.End(tp, "")
				}

				results[i] = res
				buildpipeline.EmitFinished(sink, names[i], buildpipeline.StageResolve, bag.HasErrors(), time.Since(started))
				return nil
			}
		}(i))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if total != nil {
		for _, t := range timers {
			total.Merge(t)
		}
	}
	return &CheckDirOutput{FileSet: fset, Results: results, Timing: total}, nil
}

// preload последовательно загружает все файлы в общий FileSet. После
// него FileSet не мутирует, и воркеры читают его без блокировок.
// Нечитаемый файл получает пустой виртуальный слот, чтобы диагностике
// было на что ссылаться.
func preload(fset *source.FileSet, paths []string) (ids []source.FileID, loadErrs []error) {
	ids = make([]source.FileID, len(paths))
	loadErrs = make([]error, len(paths))
	for i, path := range paths {
		id, err := fset.Load(path)
		if err != nil {
			id = fset.AddVirtual(path, nil)
			loadErrs[i] = err
		}
		ids[i] = id
	}
	return ids, loadErrs
}

// displayNames — пути в том виде, в котором их показывают события
// прогресса и результаты; индексы совпадают с paths.
func displayNames(paths []string, dir string) []string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = buildpipeline.NormalizeFile(path, dir)
	}
	return names
}

// loadDiag превращает ошибку чтения в диагностику на виртуальном
// слоте файла.
func loadDiag(id source.FileID, err error) diag.Diagnostic {
	return diag.NewError(diag.IOFileRead, source.Span{File: id}, "cannot read file: "+err.Error())
}

func workerCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > files {
		jobs = files
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}
