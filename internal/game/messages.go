package game

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgCorrect   = "outcome.correct"
	msgIncorrect = "outcome.incorrect"
	msgForfeit   = "outcome.forfeit"
)

func init() {
	lang := language.English

	message.Set(lang, msgCorrect, plural.Selectf(3, "",
		plural.One, "That is correct! Player %[1]d guessed %[2]s in %[3]d guess! They've been awarded %[4]d points!",
		plural.Other, "That is correct! Player %[1]d guessed %[2]s in %[3]d guesses! They've been awarded %[4]d points!",
	))
	message.SetString(lang, msgIncorrect, "%s is incorrect! You were %.0f kilometers off.")
	message.SetString(lang, msgForfeit, "Player %d failed to guess the country %s.")
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}
