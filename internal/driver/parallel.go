package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cci/internal/diag"
	"cci/internal/observ"
	"cci/internal/source"
	"cci/internal/token"
	"cci/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token
	Bag    *diag.Bag
	Cached bool
}

// DirResult is the outcome of TokenizeDir. Files is sorted by path.
type DirResult struct {
	FileSet *source.FileSet
	Files   []TokenizeDirResult
	Timing  *observ.Report // nil unless Options.Timings
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// IsSourceFile reports whether path names a C translation unit or header.
func IsSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c", ".h":
		return true
	}
	return false
}

// ListSourceFiles returns the sorted *.c and *.h files under dir.
// Hidden directories (".git", ".cache") are skipped.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.c/*.h файлы в директории параллельно.
// Ошибка загрузки отдельного файла становится диагностикой в его Bag;
// возвращаемая ошибка означает отмену ctx или сбой обхода каталога.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "tokenize-dir", trace.CurrentSpan(ctx))
	defer root.End(dir)
	ctx = trace.WithSpan(ctx, root)

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return &DirResult{FileSet: fileSet}, nil
	}

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	// FileSet не потокобезопасен: грузим всё до запуска воркеров
	loadIdx := beginPhase(timer, "load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустая запись, чтобы диагностика указывала на этот путь
			loadErrors[path] = err
			fileID = fileSet.Add(path, nil, source.FileVirtual)
		}
		fileIDs[path] = fileID
	}
	endPhase(timer, loadIdx, len(files)-len(loadErrors), "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))
	lexIdx := beginPhase(timer, "lex")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Newf(diag.SevError, diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: %v", loadErr))
				results[i] = TokenizeDirResult{Path: path, FileID: fileID, Bag: bag}
				opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			res := tokenizeFile(gctx, fileSet.Get(fileID), path, opts, nil)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: res.Tokens,
				Bag:    res.Bag,
				Cached: res.Cached,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &DirResult{FileSet: fileSet, Files: results}, err
	}

	total := 0
	for i := range results {
		total += len(results[i].Tokens)
	}
	endPhase(timer, lexIdx, total, "")
	root.WithCount("files", len(files)).WithCount("tokens", total)

	out := &DirResult{FileSet: fileSet, Files: results}
	if timer != nil {
		report := timer.Report()
		out.Timing = &report
	}
	return out, nil
}
