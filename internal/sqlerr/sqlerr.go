// Package sqlerr translates database driver errors into *errs.HTTPError.
//
// Constraint violations become 400 responses phrased for end users,
// missing rows become 404 and anything else is a 500.
package sqlerr
