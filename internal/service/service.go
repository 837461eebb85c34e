// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated payloads from the handlers, enforces the business rules that
// validation tags cannot express and calls the repositories. Expected
// failures are returned as *errs.HTTPError; anything else is left for the
// global error handler to translate.
package service

import (
	"strings"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/deppfellow/realty/internal/sqlerr"
)

// notFound turns a missing-row error into a 404 for entity and passes
// every other error through.
func notFound(err error, entity string) error {
	if sqlerr.IsNotFound(err) {
		return entityNotFound(entity)
	}
	return err
}

func entityNotFound(entity string) *errs.HTTPError {
	code := errs.MakeUpperCaseWithUnderscores(strings.ToUpper(entity)) + "_NOT_FOUND"
	return errs.NewNotFoundError(entity+" not found", true, &code)
}

func conflict(message, code string) *errs.HTTPError {
	return errs.NewBadRequestError(message, true, errs.Code(code), nil, nil)
}
