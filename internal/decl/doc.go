// Package decl defines the language-agnostic declaration model that sits
// between the analyzer output and the C backend.
//
// Declarations, members, statements and expressions are closed sum types:
// a Kind enum plus a Data payload with an unexported marker method. Every
// consumer switches over Kind exhaustively and treats an unknown kind as an
// unsupported construct.
//
// The model is passive. internal/lower builds fragments, internal/registry
// merges them into canonical declarations, internal/backend/c reads them.
package decl
