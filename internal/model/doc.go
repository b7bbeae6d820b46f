// Package model holds the in-memory form of the canonical operator registry
// and of a backend's override declaration.
//
// Every entity is built once per generation run and is read-only afterwards:
//
//   - OperatorName identifies an operator ("aten::add.Tensor") and is the key of every lookup.
//   - FunctionSchema is a parsed operator signature.
//   - NativeFunction is one registry entry; NativeFunctionsGroup ties together the
//     functional, in-place and out variants of one operation.
//   - ExternalBackendMetadata records that a backend implements an operator.
//   - ExternalBackendFunction and ExternalBackendFunctionsGroup are registry entries
//     annotated with that metadata (or nil when the backend did not declare support).
//
// NativeEntry and ExternalEntry are closed sum types: only the function and group
// types of this package implement them.
package model
