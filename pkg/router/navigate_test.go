package router

import (
	"context"
	"errors"
	"testing"
)

func TestNavigateResolved(t *testing.T) {
	tbl := NewTable()
	var gotID string
	tbl.MustRegister("/profile/:id", func(ctx context.Context, res *Resolution) error {
		gotID = res.Params().Get("id")
		return nil
	})

	nav := NewNavigator(tbl)
	if err := nav.Navigate(context.Background(), "/profile/42"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}
	if gotID != "42" {
		t.Errorf("handler saw id = %q, want %q", gotID, "42")
	}

	snap := nav.Current()
	if snap.State != StateResolved {
		t.Errorf("state = %v, want resolved", snap.State)
	}
	if snap.Path != "/profile/42" {
		t.Errorf("state path = %q", snap.Path)
	}
}

func TestNavigateNotFoundHandler(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/", nopHandler)

	var notFoundPath string
	nav := NewNavigator(tbl)
	nav.SetNotFound(func(ctx context.Context, res *Resolution) error {
		notFoundPath = res.Path()
		return nil
	})

	if err := nav.Navigate(context.Background(), "/florp"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}
	if notFoundPath != "/florp" {
		t.Errorf("not-found handler saw path %q, want %q", notFoundPath, "/florp")
	}
	if nav.Current().State != StateFailed {
		t.Errorf("state = %v, want failed", nav.Current().State)
	}
}

func TestNavigateNotFoundFallback(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/", nopHandler)

	var fallbackErr error
	nav := NewNavigator(tbl)
	nav.SetFallback(func(ctx context.Context, res *Resolution, err error) {
		fallbackErr = err
	})

	if err := nav.Navigate(context.Background(), "/florp"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	var nf *NotFoundError
	if !errors.As(fallbackErr, &nf) {
		t.Fatalf("fallback error = %v, want *NotFoundError", fallbackErr)
	}
	if nf.Path != "/florp" {
		t.Errorf("NotFoundError path = %q", nf.Path)
	}
}

func TestNavigateNoBoundaryReturnsError(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/", nopHandler)

	nav := NewNavigator(tbl)
	err := nav.Navigate(context.Background(), "/florp")

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Navigate error = %v, want *NotFoundError", err)
	}
}

func TestNavigateHandlerErrorHitsRouteBoundary(t *testing.T) {
	loadErr := errors.New("data fetch failed")

	tbl := NewTable()
	var boundaryCalls int
	var boundaryErr error
	tbl.MustRegister("/profile/:id",
		func(ctx context.Context, res *Resolution) error { return loadErr },
		WithErrorHandler(func(ctx context.Context, res *Resolution, err error) {
			boundaryCalls++
			boundaryErr = err
		}),
	)

	var fallbackCalls int
	nav := NewNavigator(tbl)
	nav.SetFallback(func(ctx context.Context, res *Resolution, err error) {
		fallbackCalls++
	})

	if err := nav.Navigate(context.Background(), "/profile/42"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	if boundaryCalls != 1 {
		t.Errorf("route boundary called %d times, want exactly 1", boundaryCalls)
	}
	if !errors.Is(boundaryErr, loadErr) {
		t.Errorf("boundary received %v, want the handler error", boundaryErr)
	}
	var nf *NotFoundError
	if errors.As(boundaryErr, &nf) {
		t.Error("handler failure must not be reported as not-found")
	}
	if fallbackCalls != 0 {
		t.Error("fallback invoked although the route has its own boundary")
	}
	if nav.Current().State != StateFailed {
		t.Errorf("state = %v, want failed", nav.Current().State)
	}
}

func TestNavigateHandlerErrorFallsBack(t *testing.T) {
	loadErr := errors.New("data fetch failed")

	tbl := NewTable()
	tbl.MustRegister("/profile/:id", func(ctx context.Context, res *Resolution) error {
		return loadErr
	})

	var fallbackErr error
	nav := NewNavigator(tbl)
	nav.SetFallback(func(ctx context.Context, res *Resolution, err error) {
		fallbackErr = err
	})

	if err := nav.Navigate(context.Background(), "/profile/42"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}
	if !errors.Is(fallbackErr, loadErr) {
		t.Errorf("fallback received %v, want the handler error", fallbackErr)
	}
}

func TestNavigateHandlerErrorNoBoundary(t *testing.T) {
	loadErr := errors.New("data fetch failed")

	tbl := NewTable()
	tbl.MustRegister("/profile/:id", func(ctx context.Context, res *Resolution) error {
		return loadErr
	})

	nav := NewNavigator(tbl)
	if err := nav.Navigate(context.Background(), "/profile/42"); !errors.Is(err, loadErr) {
		t.Errorf("Navigate error = %v, want the handler error surfaced", err)
	}
}

func TestNavigateTransitions(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/about", nopHandler)

	nav := NewNavigator(tbl)
	var states []NavState
	nav.OnChange(func(snap Snapshot) {
		states = append(states, snap.State)
	})

	if err := nav.Navigate(context.Background(), "/about"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	want := []NavState{StateResolving, StateResolved}
	if len(states) != len(want) {
		t.Fatalf("transitions = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("transition[%d] = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestNavigateSnapshotsShareCanonicalPath(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/about", nopHandler)

	nav := NewNavigator(tbl)
	var paths []string
	nav.OnChange(func(snap Snapshot) {
		paths = append(paths, snap.Path)
	})

	if err := nav.Navigate(context.Background(), "/about/?tab=team"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("transitions = %v, want 2", paths)
	}
	for i, p := range paths {
		if p != "/about" {
			t.Errorf("snapshot[%d].Path = %q, want canonical /about", i, p)
		}
	}
}

func TestNavigateMiddlewareOrder(t *testing.T) {
	tbl := NewTable()
	var order []string
	tbl.MustRegister("/about", func(ctx context.Context, res *Resolution) error {
		order = append(order, "handler")
		return nil
	})

	nav := NewNavigator(tbl)
	nav.Use(
		MiddlewareFunc(func(ctx context.Context, res *Resolution, next func() error) error {
			order = append(order, "first")
			return next()
		}),
		MiddlewareFunc(func(ctx context.Context, res *Resolution, next func() error) error {
			order = append(order, "second")
			return next()
		}),
	)

	if err := nav.Navigate(context.Background(), "/about"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestNavigateMiddlewareShortCircuit(t *testing.T) {
	tbl := NewTable()
	handlerRan := false
	tbl.MustRegister("/about", func(ctx context.Context, res *Resolution) error {
		handlerRan = true
		return nil
	})

	nav := NewNavigator(tbl)
	nav.Use(MiddlewareFunc(func(ctx context.Context, res *Resolution, next func() error) error {
		return nil // stop without error
	}))

	if err := nav.Navigate(context.Background(), "/about"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}
	if handlerRan {
		t.Error("handler ran although middleware stopped the chain")
	}
	if nav.Current().State != StateResolved {
		t.Errorf("state = %v, want resolved", nav.Current().State)
	}
}

func TestNavigateMiddlewareErrorHitsBoundary(t *testing.T) {
	mwErr := errors.New("unauthorized")

	tbl := NewTable()
	var boundaryErr error
	tbl.MustRegister("/admin",
		nopHandler,
		WithErrorHandler(func(ctx context.Context, res *Resolution, err error) {
			boundaryErr = err
		}),
	)

	nav := NewNavigator(tbl)
	nav.Use(MiddlewareFunc(func(ctx context.Context, res *Resolution, next func() error) error {
		return mwErr
	}))

	if err := nav.Navigate(context.Background(), "/admin"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}
	if !errors.Is(boundaryErr, mwErr) {
		t.Errorf("boundary received %v, want middleware error", boundaryErr)
	}
}
