package resolver

import (
	"fmt"
	"testing"
)

func TestWalkRefsFollowsDocuments(t *testing.T) {
	docs := map[string]any{
		"a.json": map[string]any{"file": "a", "b": map[string]any{"$ref": "b.json"}},
		"b.json": map[string]any{"file": "b", "c": map[string]any{"$ref": "c.json"}},
		"c.json": map[string]any{"file": "c"},
	}
	loaderFn, _ := countingLoader(docs)
	result := replace(t, docs["a.json"], WithLoader(loaderFn))

	var visited []string
	err := WalkRefs(result, func(r *Ref) error {
		visited = append(visited, r.FullURI())
		return nil
	})
	if err != nil {
		t.Fatalf("WalkRefs returned error: %v", err)
	}
	// The walk follows resolution into b.json to find the reference to
	// c.json.
	if len(visited) != 2 {
		t.Fatalf("visited %v, want 2 references", visited)
	}
}

func TestWalkRefsVisitsCyclesOnce(t *testing.T) {
	json1 := map[string]any{"a": map[string]any{"$ref": "/json2"}}
	json2 := map[string]any{"b": map[string]any{"$ref": "/json1"}}
	loaderFn, _ := countingLoader(map[string]any{"/json1": json1, "/json2": json2})
	result := replace(t, json1, WithBaseURI("/json1"), WithLoader(loaderFn))

	count := 0
	if err := WalkRefs(result, func(*Ref) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("WalkRefs returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("visited %d references in a two-document cycle, want 2", count)
	}
}

func TestWalkRefsVisitErrorAborts(t *testing.T) {
	doc := map[string]any{
		"a": float64(1),
		"b": map[string]any{"$ref": "#/a"},
	}
	result := replace(t, doc)
	wantErr := fmt.Errorf("stop here")
	if err := WalkRefs(result, func(*Ref) error { return wantErr }); err != wantErr { //nolint:errorlint // identity deliberate
		t.Fatalf("WalkRefs error = %v, want the visit error unchanged", err)
	}
}

func TestWalkRefsToleratesFailedReferences(t *testing.T) {
	doc := map[string]any{
		"ok":     map[string]any{"$ref": "#/target"},
		"broken": map[string]any{"$ref": "#/missing"},
		"target": "value",
	}
	result := replace(t, doc)

	var failures int
	err := WalkRefs(result, func(r *Ref) error {
		if _, err := r.Subject(); err != nil {
			failures++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkRefs returned error: %v", err)
	}
	if failures != 1 {
		t.Fatalf("observed %d failed references, want 1", failures)
	}
}

func TestWalkRefsSharedTargetVisitedOnce(t *testing.T) {
	doc := map[string]any{
		"shared": map[string]any{"inner": map[string]any{"$ref": "#/leaf"}},
		"a":      map[string]any{"$ref": "#/shared"},
		"b":      map[string]any{"$ref": "#/shared"},
		"leaf":   float64(1),
	}
	result := replace(t, doc)
	count := 0
	if err := WalkRefs(result, func(*Ref) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("WalkRefs returned error: %v", err)
	}
	// a, b, and the inner reference of the shared target; the shared
	// target's contents are visited once even though three routes lead
	// there.
	if count != 3 {
		t.Fatalf("visited %d references, want 3", count)
	}
}
