// Package resolve merges the canonical registry with a backend declaration and
// produces the external-function view consumed by code generation.
//
// Resolution pipeline:
//  1. Flatten the grouped registry into a map from operator name to function
//  2. Validate that every operator the backend declares exists in the registry
//  3. Annotate every registry entry, in registry order, with the backend's
//     metadata or nil when the backend did not declare it
package resolve
