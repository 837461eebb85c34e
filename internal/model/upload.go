package model

import "github.com/deppfellow/realty/internal/validation"

// FilenameParam binds the :filename path parameter of the upload routes.
type FilenameParam struct {
	Filename string `param:"filename" json:"-" validate:"required,max=255"`
}

func (p *FilenameParam) Validate() error {
	return validation.Struct(p)
}
