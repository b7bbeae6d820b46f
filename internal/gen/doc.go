// Package gen renders the generated C++ sources from text/template templates.
//
// Templates are looked up by output file name, first in a template directory
// when one is configured, then among the templates embedded in this package.
// Rendering happens in memory; nothing reaches the install directory until
// Flush, and Flush refuses to write anything once a render has failed.
//
// Template functions:
//   - lines: one fragment per line
//   - indent: like lines, every non-empty line indented by n spaces
//   - lower: strings.ToLower
package gen
