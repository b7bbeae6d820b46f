// Package native loads the canonical operator registry (native_functions.yaml)
// and groups its functional, in-place and out variants.
//
// The registry is a YAML sequence of entries:
//
//	- func: add.Tensor(Tensor self, Tensor other, *, Scalar alpha=1) -> Tensor
//	  variants: function, method
//	  dispatch:
//	    CPU, CUDA: add
//	    SparseCPU: add_sparse
//	- func: add.out(Tensor self, Tensor other, *, Scalar alpha=1, Tensor(a!) out) -> Tensor(a!)
//
// Only "func" is required. Keys the generator does not use are ignored.
package native
