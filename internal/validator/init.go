package validator

import (
	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/game"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		_, err := bot.ParseDifficulty(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		return game.PlayerMark(fl.Field().String()).Valid()
	})
}

func GetValidator() *validator.Validate {
	return validate
}
