package handlers

import (
	"strings"
	"sync"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request DTOs.
// Safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("ymd", validateYMD)
		_ = v.RegisterValidation("withdrawal_method", validateWithdrawalMethod)
	})
}

func validateYMD(fl validator.FieldLevel) bool {
	_, err := domain.ParseDay(fl.Field().String())
	return err == nil
}

func validateWithdrawalMethod(fl validator.FieldLevel) bool {
	return domain.WithdrawalMethod(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).Valid()
}
