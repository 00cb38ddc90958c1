package board

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// fakeSurface records gestures and answers page scripts from canned values.
type fakeSurface struct {
	url        string
	locate     map[string]any
	lastMoves  [][]string
	inspect    map[string]any
	evalErr    error
	clickErr   error
	moveErr    error
	failMoveAt int

	calls      []string
	clicked    []string
	evalArgs   []any
	moves      int
	lastMoveN  int
}

func (f *fakeSurface) Evaluate(_ context.Context, script string, arg any) (any, error) {
	f.evalArgs = append(f.evalArgs, arg)
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	switch script {
	case locateScript:
		f.calls = append(f.calls, "locate")
		if f.locate == nil {
			return map[string]any{"found": false}, nil
		}
		return f.locate, nil
	case lastMoveScript:
		f.calls = append(f.calls, "highlight")
		i := f.lastMoveN
		f.lastMoveN++
		if len(f.lastMoves) == 0 {
			return []any{}, nil
		}
		if i >= len(f.lastMoves) {
			i = len(f.lastMoves) - 1
		}
		classes := make([]any, len(f.lastMoves[i]))
		for j, c := range f.lastMoves[i] {
			classes[j] = c
		}
		return classes, nil
	case inspectScript:
		f.calls = append(f.calls, "inspect")
		return f.inspect, nil
	}
	return nil, errors.New("unexpected script")
}

func (f *fakeSurface) MouseMove(_ context.Context, x, y float64, steps int) error {
	f.moves++
	f.calls = append(f.calls, fmt.Sprintf("move(%.0f,%.0f)", x, y))
	if f.moveErr != nil && f.moves == f.failMoveAt {
		return f.moveErr
	}
	return nil
}

func (f *fakeSurface) MouseDown(context.Context) error {
	f.calls = append(f.calls, "down")
	return nil
}

func (f *fakeSurface) MouseUp(context.Context) error {
	f.calls = append(f.calls, "up")
	return nil
}

func (f *fakeSurface) Click(_ context.Context, selector string, _ time.Duration) error {
	f.clicked = append(f.clicked, selector)
	return f.clickErr
}

func (f *fakeSurface) URL() string { return f.url }

// boardAt is a locate result for an 800px board at (100, 50), oriented by
// the flipped class.
func boardAt(flipped bool) map[string]any {
	method := MethodDefault
	if flipped {
		method = MethodClass
	}
	return boardOriented(flipped, method)
}

func boardOriented(flipped bool, method string) map[string]any {
	return map[string]any{
		"found":    true,
		"selector": ".TheBoard-squares",
		"left":     100.0,
		"top":      50.0,
		"width":    800.0,
		"height":   800.0,
		"flipped":  flipped,
		"method":   method,
	}
}

func noSleep(context.Context, time.Duration) error { return nil }

func newTestBoard(surface *fakeSurface, opts Options) *ChessCom {
	c := NewChessCom(surface, opts, nil)
	c.sleep = noSleep
	return c
}
