package generator

import (
	"slices"

	"github.com/samber/lo"
)

// Kind is a contact-method kind; its string value is the wire key.
type Kind string

const (
	EmailAddress        Kind = "emailAddress"
	ResidenceAddress    Kind = "residenceAddress"
	RegisteredAddress   Kind = "registeredAddress"
	PrivatePhoneNumber  Kind = "privatePhoneNumber"
	BusinessPhoneNumber Kind = "businessPhoneNumber"
)

// Kinds lists every allowed contact-method kind. Selection indexes into it.
var Kinds = []Kind{
	EmailAddress,
	ResidenceAddress,
	RegisteredAddress,
	PrivatePhoneNumber,
	BusinessPhoneNumber,
}

// Selection size is drawn from [minMethods, maxMethods).
const (
	minMethods = 2
	maxMethods = 5
)

// valueGenerators maps each kind to the function producing its value.
var valueGenerators = map[Kind]func(g *Generator, k Kind) string{
	EmailAddress:        func(g *Generator, _ Kind) string { return g.Email() },
	ResidenceAddress:    func(g *Generator, k Kind) string { return g.Address(k) },
	RegisteredAddress:   func(g *Generator, k Kind) string { return g.Address(k) },
	PrivatePhoneNumber:  func(g *Generator, _ Kind) string { return g.PhoneNumber() },
	BusinessPhoneNumber: func(g *Generator, _ Kind) string { return g.PhoneNumber() },
}

// ContactMethods maps the selected kinds to their generated values.
type ContactMethods map[Kind]string

// Kinds returns the kinds present, sorted for stable logging.
func (m ContactMethods) Kinds() []Kind {
	kinds := lo.Keys(m)
	slices.Sort(kinds)
	return kinds
}

// Strings converts the set into the wire shape, keyed by kind name.
func (m ContactMethods) Strings() map[string]string {
	return lo.MapKeys(m, func(_ string, k Kind) string { return string(k) })
}

// SelectKinds draws 2 to 4 distinct kinds by rejection sampling indices into Kinds.
func (g *Generator) SelectKinds() []Kind {
	quantity := g.between(minMethods, maxMethods)

	seen := make(map[int]struct{}, quantity)
	selected := make([]Kind, 0, quantity)
	for len(selected) < quantity {
		i := g.rng.IntN(len(Kinds))
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		selected = append(selected, Kinds[i])
	}
	return selected
}

// ContactMethods selects a random subset of kinds and generates a value for each.
func (g *Generator) ContactMethods() ContactMethods {
	return g.ValuesFor(g.SelectKinds())
}

// ValuesFor generates a value for each kind. Unknown kinds are skipped.
func (g *Generator) ValuesFor(kinds []Kind) ContactMethods {
	methods := make(ContactMethods, len(kinds))
	for _, k := range kinds {
		gen, ok := valueGenerators[k]
		if !ok {
			continue
		}
		methods[k] = gen(g, k)
	}
	return methods
}
