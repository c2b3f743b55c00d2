package main

import (
	"context"
	"path/filepath"

	"cci/internal/driver"
	"cci/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// tokenizeDirWithUI runs TokenizeDir in the background and renders its
// progress events until it finishes.
func tokenizeDirWithUI(ctx context.Context, dir string, opts driver.Options) (*driver.DirResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.TokenizeDir(ctx, dir, o)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress("tokenize "+filepath.Base(dir), files, events)
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
