// Package backend parses a backend's override declaration: the YAML file in
// which an out-of-tree backend lists the operators it implements.
//
//	backend: XLA
//	cpp_namespace: torch_xla
//	class_name: AtenXlaType   # optional
//	supported:
//	  - add.Tensor
//	  - relu
//	autograd:
//	  - max_pool2d
//
// Operators under "supported" register on the backend's dispatch key, those
// under "autograd" on its autograd key. An operator may be listed only once
// across both lists.
package backend
