// Package validation binds request data and validates it.
//
// Rules live in `validate` struct tags; a handful of domain formats
// (zip codes, CNPJ, phone numbers, image references) are registered as
// custom tags on the shared validator.
package validation
