package native

import (
	"github.com/pkg/errors"

	"backend-stubs-generator/internal/model"
)

// GroupNativeFunctions partitions fs into groups and standalone functions.
//
// Functions sharing a signature key form a group when both a functional and an
// out variant exist; an in-place variant joins such a group when present. Every
// other function stays standalone. A group takes the position of its first
// member, so the result follows registry order.
func GroupNativeFunctions(fs []*model.NativeFunction) ([]model.NativeEntry, error) {
	type bucket struct {
		group   model.NativeFunctionsGroup
		invalid bool
		emitted bool
	}

	buckets := make(map[string]*bucket)

	for _, f := range fs {
		key := f.Func.SignatureKey()

		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}

		var slot **model.NativeFunction

		switch f.Func.Kind() {
		case model.SchemaKindFunctional:
			slot = &b.group.Functional
		case model.SchemaKindInplace:
			slot = &b.group.Inplace
		case model.SchemaKindOut:
			slot = &b.group.Out
		}

		if *slot != nil {
			// Two candidates for one slot: no unambiguous grouping exists.
			b.invalid = true
			continue
		}

		*slot = f
	}

	entries := make([]model.NativeEntry, 0, len(fs))

	for _, f := range fs {
		b := buckets[f.Func.SignatureKey()]
		if b.invalid || b.group.Functional == nil || b.group.Out == nil {
			entries = append(entries, f)
			continue
		}

		if b.emitted {
			continue
		}

		b.emitted = true
		g := b.group

		if err := g.Validate(); err != nil {
			return nil, errors.Wrapf(err, "grouping %s", f.Name())
		}

		entries = append(entries, &g)
	}

	return entries, nil
}

// LoadGrouped loads the registry at path and groups it.
func LoadGrouped(path string) ([]model.NativeEntry, error) {
	fs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return GroupNativeFunctions(fs)
}
