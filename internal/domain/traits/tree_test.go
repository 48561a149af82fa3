package traits

import (
	"sort"
	"testing"
)

func TestTree_DecideExactPath(t *testing.T) {
	tree := NewTree()
	tree.Insert([]int{5, 3, 1}, "Labrador")
	tree.Insert([]int{5, 3, 1}, "Golden")
	tree.Insert([]int{5, 2, 1}, "Mops")

	got := tree.Decide([]int{5, 3, 1})
	sort.Strings(got)
	if len(got) != 2 || got[0] != "Golden" || got[1] != "Labrador" {
		t.Errorf("Decide = %v, want [Golden Labrador]", got)
	}
}

func TestTree_DecideNoMatch(t *testing.T) {
	tree := NewTree()
	tree.Insert([]int{5, 3, 1}, "Labrador")

	if got := tree.Decide([]int{1, 1, 1}); len(got) != 0 {
		t.Errorf("Decide = %v, want empty", got)
	}
	// un prefijo que diverge en el último nivel tampoco calza
	if got := tree.Decide([]int{5, 3, 2}); len(got) != 0 {
		t.Errorf("Decide = %v, want empty", got)
	}
}

func TestTree_SharedPrefixBranches(t *testing.T) {
	tree := NewTree()
	tree.Insert([]int{5, 3}, "A")
	tree.Insert([]int{5, 2}, "B")

	if got := tree.Decide([]int{5, 3}); len(got) != 1 || got[0] != "A" {
		t.Errorf("Decide(5,3) = %v, want [A]", got)
	}
	if got := tree.Decide([]int{5, 2}); len(got) != 1 || got[0] != "B" {
		t.Errorf("Decide(5,2) = %v, want [B]", got)
	}
}

func TestTree_InsertBreedUsesTraitOrder(t *testing.T) {
	b := breedWith("Mops", 3, map[Trait]int{TraitAffectionate: 5})
	tree := NewTree()
	tree.InsertBreed(b)

	choices := make([]int, 0, len(All()))
	for _, trait := range All() {
		choices = append(choices, b.Scores[trait])
	}

	if got := tree.Decide(choices); len(got) != 1 || got[0] != "Mops" {
		t.Errorf("Decide = %v, want [Mops]", got)
	}
}

func TestTree_EmptyChoicesReturnsRootLevel(t *testing.T) {
	tree := NewTree()
	tree.Insert([]int{5}, "A")

	// sin elecciones, el nivel raíz expone los primeros valores, no razas
	got := tree.Decide(nil)
	if len(got) != 1 || got[0] != "5" {
		t.Errorf("Decide(nil) = %v, want [5]", got)
	}
}
