// Package interpreter turns natural-language editing requests into structured
// execution plans.
//
// A plan is a JSON document listing bridge operations with their parameters.
// The model sees a catalog of supported operations, the current editor context,
// and the user request, and must answer with JSON only. Requests the scripting
// surface cannot satisfy come back as an error plan carrying a suggestion
// instead of operations.
package interpreter
