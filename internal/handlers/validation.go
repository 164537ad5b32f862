package handlers

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the ledger-specific binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("accountcode", validateAccountCode); err != nil {
		return err
	}
	return v.RegisterValidation("side", validateSide)
}

func validateAccountCode(fl validator.FieldLevel) bool {
	_, err := domain.ParseAccountCode(fl.Field().String())
	return err == nil
}

func validateSide(fl validator.FieldLevel) bool {
	_, err := domain.ParseSide(fl.Field().String())
	return err == nil
}
