package ir

import "github.com/dannys-code-corner/incan/token"

// ExpandDerives closes names under token.DeriveImplies (e.g. `Ord` pulls in
// `Eq`), returning the set in first-seen order with duplicates removed. Order
// matters downstream: the emitter writes derive attributes in the order
// lowering settles on, and diagnostics over a derive set must read back
// deterministically.
func ExpandDerives(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	var add func(string)
	add = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
		for _, implied := range token.DeriveImplies(name) {
			add(implied)
		}
	}
	for _, name := range names {
		add(name)
	}
	return out
}

// DeriveConflict is one user-defined method that collides with a derived
// one: the class both derives Eq (say) and hand-writes its own equality
// method, leaving two definitions competing for the same target-language
// trait implementation.
type DeriveConflict struct {
	Derive string
	Method string
}

// deriveDunder maps a derive name to the dunder-style method name a user
// definition of it would collide with.
var deriveDunder = map[string]string{
	"Eq":      "__eq__",
	"Ord":     "__lt__",
	"Hash":    "__hash__",
	"Display": "__str__",
}

// ValidateDeriveConflicts reports every derive in derives whose backing
// method name also appears, hand-written, in methods. Spec treats this as an
// error rather than silently preferring one definition over the other,
// since either choice would silently discard code the author wrote.
func ValidateDeriveConflicts(derives []string, methods map[string]bool) []DeriveConflict {
	var conflicts []DeriveConflict
	for _, d := range derives {
		dunder, ok := deriveDunder[d]
		if !ok {
			continue
		}
		if methods[dunder] {
			conflicts = append(conflicts, DeriveConflict{Derive: d, Method: dunder})
		}
	}
	return conflicts
}
