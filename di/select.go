package di

import (
	"reflect"

	"github.com/kbukum/svcregistry/errors"
)

// SelectConstructor picks the constructor the registry uses for t:
//
//  1. the single constructor carrying the injection marker;
//  2. with no marked constructor, the single constructor taking exactly one parameter.
//
// Anything else, including several marked constructors or none at all, is a
// NO_ELIGIBLE_CONSTRUCTOR error naming t.
func SelectConstructor(t reflect.Type, ctors []Constructor) (Constructor, error) {
	var marked, single []Constructor
	for _, c := range ctors {
		if c == nil {
			continue
		}
		if c.Injected() {
			marked = append(marked, c)
		}
		if len(c.Params()) == 1 {
			single = append(single, c)
		}
	}

	switch {
	case len(marked) == 1:
		return marked[0], nil
	case len(marked) == 0 && len(single) == 1:
		return single[0], nil
	}
	return nil, errors.NoEligibleConstructor(typeName(t), len(ctors), len(marked), len(single))
}
