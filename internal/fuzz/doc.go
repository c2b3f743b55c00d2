// Package fuzztests houses Go fuzz harnesses for the C front end
// (source -> lexer -> literal evaluation). Its goal is to smoke test
// robustness and guard against panics, broken token tiling or allocator
// explosions on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер и декодеры литералов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/literal, internal/diag,
// internal/testkit.

package fuzztests
