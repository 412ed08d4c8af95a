package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/openboard/comment_board_app/internal/core/domain"
)

// registerValidators attaches custom binding validators to gin's validator
// engine. Safe to call more than once; re-registration overwrites.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// permflag: the string must be one of the global permission flags.
	_ = v.RegisterValidation("permflag", func(fl validator.FieldLevel) bool {
		return domain.ValidPermission(domain.Permission(fl.Field().String()))
	})
}
