// Package cpp renders operator schemas as C++ signatures for the generated
// backend glue: argument and return types, function names and parameter lists.
package cpp
