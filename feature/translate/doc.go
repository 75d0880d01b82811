// Package translate shapes lookup rows into one-to-one translations and
// fails loudly when the table does not provide exactly one value per
// identifier.
//
// # HTTP Endpoints
//
//   - GET /translate/:identifier : Translates one identifier (?from=, ?to=).
//   - POST /translate : Translates a string or a list of identifiers.
package translate
