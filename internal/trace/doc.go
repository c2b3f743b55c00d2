// Package trace records what the front end is doing while it runs.
//
// Events are grouped by scope, from the whole command down to single files:
//
//   - ScopeDriver: one CLI command
//   - ScopePass: one pass over the input set (lex)
//   - ScopeFile: one translation unit
//   - ScopeNode: token-level detail (debug only)
//
// Enable it from the CLI:
//
//	cci tokenize --trace=- --trace-level=detail src/
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", 0)
//	defer span.End("")
package trace
