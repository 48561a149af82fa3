package traits

import "strconv"

// Tree es un árbol de decisión sobre los valores de rasgos: cada nivel
// corresponde a un rasgo (en el orden de All) y las hojas son nombres de
// raza. Las razas con la misma secuencia de valores comparten rama.
type Tree struct {
	root string
	subs []*Tree
}

// NewTree crea el árbol vacío.
func NewTree() *Tree {
	return &Tree{}
}

// Insert agrega la secuencia de valores de rasgos de una raza, con el
// nombre como hoja final.
func (t *Tree) Insert(values []int, breed string) {
	seq := make([]string, 0, len(values)+1)
	for _, v := range values {
		seq = append(seq, strconv.Itoa(v))
	}
	seq = append(seq, breed)
	t.insertSequence(seq)
}

// InsertBreed inserta una raza del catálogo usando sus rasgos en orden.
func (t *Tree) InsertBreed(b Breed) {
	values := make([]int, 0, len(All()))
	for _, trait := range All() {
		values = append(values, b.Scores[trait])
	}
	t.Insert(values, b.Name)
}

func (t *Tree) insertSequence(items []string) {
	if len(items) == 0 {
		return
	}
	if sub := t.find(items[0]); sub != nil {
		sub.insertSequence(items[1:])
		return
	}
	sub := &Tree{root: items[0]}
	t.subs = append(t.subs, sub)
	sub.insertSequence(items[1:])
}

func (t *Tree) find(item string) *Tree {
	for _, sub := range t.subs {
		if sub.root == item {
			return sub
		}
	}
	return nil
}

// Decide recorre el árbol con las elecciones del usuario y devuelve las
// razas que coinciden exactamente. Slice vacío si ninguna rama calza.
func (t *Tree) Decide(choices []int) []string {
	current := t
	for _, choice := range choices {
		next := current.find(strconv.Itoa(choice))
		if next == nil {
			return []string{}
		}
		current = next
	}

	out := make([]string, 0, len(current.subs))
	for _, sub := range current.subs {
		out = append(out, sub.root)
	}
	return out
}
