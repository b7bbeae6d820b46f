// Package stubs drives backend stub generation: it loads the operator registry
// and a backend declaration, resolves one against the other, and renders the
// backend class header, the fallback header and the fallback/registration source.
package stubs
