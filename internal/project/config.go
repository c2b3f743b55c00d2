package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"cci/internal/diag"
	"cci/internal/fix"
	"cci/internal/source"
)

// Config mirrors cci.toml. Missing keys keep the values from Default.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Lexer       LexerConfig       `toml:"lexer"`
	Build       BuildConfig       `toml:"build"`
	Cache       CacheConfig       `toml:"cache"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"` // auto|on|off
	Dedup bool   `toml:"dedup"`
}

type LexerConfig struct {
	QuietMultichar bool `toml:"quiet_multichar"`
	MaxTokenLength int  `toml:"max_token_length"` // 0 = lexer default
}

type BuildConfig struct {
	Jobs int `toml:"jobs"` // 0 = GOMAXPROCS
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто: $XDG_CACHE_HOME/cci
}

// Default returns the configuration used when no cci.toml exists.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto", Dedup: true},
	}
}

// Manifest is a decoded cci.toml.
type Manifest struct {
	Path    string
	Root    string
	Config  Config
	Unknown []string // ключи, которые не легли ни в одно поле

	content []byte
}

// ConfigError reports an invalid value in cci.toml.
type ConfigError struct {
	Path string
	Key  string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Key, e.Msg)
}

// Code is the diagnostic code the CLI reports this error under.
func (e *ConfigError) Code() diag.Code { return diag.ProjConfigInvalid }

// Load decodes the manifest at path over Default and validates it.
func Load(path string) (*Manifest, error) {
	// #nosec G304 -- path comes from FindManifest or --config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "failed to parse TOML: " + err.Error()}
	}
	if err := validate(path, meta, &cfg); err != nil {
		return nil, err
	}
	m := &Manifest{
		Path:    path,
		Root:    filepath.Dir(path),
		Config:  cfg,
		content: data,
	}
	for _, key := range meta.Undecoded() {
		m.Unknown = append(m.Unknown, key.String())
	}
	return m, nil
}

// Discover finds and loads cci.toml above startDir. ok is false when there is none.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	return m, true, err
}

func validate(path string, meta toml.MetaData, cfg *Config) error {
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return &ConfigError{Path: path, Key: "diagnostics.max", Msg: "must not be negative"}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Diagnostics.Color)) {
	case "auto", "on", "off":
		cfg.Diagnostics.Color = strings.ToLower(strings.TrimSpace(cfg.Diagnostics.Color))
	default:
		return &ConfigError{Path: path, Key: "diagnostics.color", Msg: fmt.Sprintf("%q is not auto|on|off", cfg.Diagnostics.Color)}
	}
	if cfg.Lexer.MaxTokenLength < 0 {
		return &ConfigError{Path: path, Key: "lexer.max_token_length", Msg: "must not be negative"}
	}
	if _, err := safecast.Conv[uint32](cfg.Lexer.MaxTokenLength); err != nil {
		return &ConfigError{Path: path, Key: "lexer.max_token_length", Msg: err.Error()}
	}
	if cfg.Build.Jobs < 0 {
		return &ConfigError{Path: path, Key: "build.jobs", Msg: "must not be negative"}
	}
	if meta.IsDefined("cache", "dir") && cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		// относительный путь считается от каталога манифеста
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return nil
}

// ReportUnknown registers the manifest in fs and emits a ProjConfigUnknown
// warning for every key that no field consumed, pointing at its definition.
func (m *Manifest) ReportUnknown(fs *source.FileSet, r diag.Reporter) {
	if m == nil || len(m.Unknown) == 0 || r == nil {
		return
	}
	file := fs.Get(fs.Add(m.Path, m.content, 0))
	for _, key := range m.Unknown {
		span := keySpan(file, key)
		r.Report(diag.ProjConfigUnknown, diag.SevWarning, span,
			fmt.Sprintf("unknown key %q in %s", key, ManifestName),
			nil,
			[]diag.Fix{{Title: "remove the key", Edits: []diag.FixEdit{fix.Delete(lineSpan(file, span))}}})
	}
}

// keySpan locates the line that defines the last component of a dotted key.
// Falls back to an empty span at the file start.
func keySpan(file *source.File, key string) source.Span {
	name := key
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		name = key[i+1:]
	}
	var off uint32
	for line := range bytes.SplitAfterSeq(file.Content, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " \t")
		if rest, ok := bytes.CutPrefix(trimmed, []byte(name)); ok {
			rest = bytes.TrimLeft(rest, " \t")
			if len(rest) > 0 && rest[0] == '=' {
				start := off + uint32(len(line)-len(trimmed))
				return source.Span{File: file.ID, Start: start, End: start + uint32(len(name))}
			}
		}
		off += uint32(len(line))
	}
	return source.Span{File: file.ID}
}

func lineSpan(file *source.File, sp source.Span) source.Span {
	if sp.Empty() {
		return sp
	}
	start, end := sp.Start, sp.End
	for start > 0 && file.Content[start-1] != '\n' {
		start--
	}
	for end < file.Size() && file.Content[end] != '\n' {
		end++
	}
	if end < file.Size() {
		end++
	}
	return source.Span{File: file.ID, Start: start, End: end}
}
