package dest

// Target selects which fragment a generator emits for an entry.
type Target int

//go:generate go tool stringer -type=Target -trimprefix=Target -output=target_string.go

const (
	TargetDeclaration Target = iota
	TargetNamespacedDeclaration
	TargetNamespacedDefinition
	TargetRegistration
)
