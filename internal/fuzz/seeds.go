package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

// builtinSeeds cover every token family and every lexical error path.
var builtinSeeds = []string{
	"",
	"int main(void) { return 0; }\n",
	"a>>=b<<=c>>d...e->f",
	"0 42 0xff 3.14 2.f .5 7. 1.5x 0x 12ab",
	`'a' L'b' u'c' U'd' u8'e' 'ab' '\n' '\x41' '\101' 'é'`,
	`"s" L"w" u"x" U"y" u8"z" "a\tb\\c\"d"`,
	"'unterminated\n\"also unterminated",
	"'' \"\" @ $ ` #",
	"/* open comment",
	"x/**/y//z\n/* multi\nline */w",
	"\xff\xfe\x00 \xc3\xa9 日本",
	"int\vx\f=\r\n1;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет *.c/*.h из testdata/ в корне модуля, если он есть.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".c" && ext != ".h" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}
