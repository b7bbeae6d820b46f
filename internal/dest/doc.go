// Package dest turns resolved registry entries into C++ text fragments.
//
// Each generator is a pure function from one entry to zero or more fragments;
// a group yields one fragment per present variant, in functional, in-place,
// out order. Callers concatenate the results in registry order.
//
// Targets:
//   - TargetDeclaration: static member declaration of the backend kernel, for every entry
//   - TargetNamespacedDeclaration: declaration of the CPU fallback, for every entry
//   - TargetNamespacedDefinition: definition of the CPU fallback, for every entry
//   - TargetRegistration: dispatcher registration of the backend kernel, only for
//     entries the backend declared
package dest
