package translations

import "strings"

// Table mapea nombres de raza en alemán (como vienen en el dataset de
// Zürich) a su nombre en inglés. Inmutable después de construirse.
type Table struct {
	byGerman map[string]string
}

func New(pairs map[string]string) *Table {
	t := &Table{byGerman: make(map[string]string, len(pairs))}
	for de, en := range pairs {
		de = strings.TrimSpace(de)
		en = strings.TrimSpace(en)
		if de == "" || en == "" {
			continue
		}
		t.byGerman[de] = en
	}
	return t
}

// Lookup devuelve el nombre traducido, o el original si no hay entrada.
func (t *Table) Lookup(german string) string {
	if t == nil {
		return german
	}
	if en, ok := t.byGerman[strings.TrimSpace(german)]; ok {
		return en
	}
	return german
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byGerman)
}
