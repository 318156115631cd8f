package cli

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/Makepad-fr/bloco/internal/feedback"
	"github.com/Makepad-fr/bloco/internal/ui"
)

func (r *runner) feedback(args []string) int {
	if len(args) == 0 || args[0] != "send" {
		ui.Fail("usage: bloco feedback send -rating 1-5 [-email e] <text...>")
		return 2
	}
	fs := flag.NewFlagSet("feedback send", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rating := fs.Int("rating", 0, "rating 1-5")
	email := fs.String("email", "", "optional contact email")
	if err := fs.Parse(args[1:]); err != nil {
		ui.Fail("feedback send: " + err.Error())
		return 2
	}

	screen := feedback.NewScreen(nil)
	screen.Form = feedback.Form{
		Text:   strings.Join(fs.Args(), " "),
		Email:  *email,
		Rating: *rating,
	}

	rated := screen.Form.Rating
	err := screen.Submit(r.ctx, r.app.Feedback)
	for {
		switch {
		case err == nil:
			ui.OK("Feedback Enviado! " + ui.Stars(rated) + " Obrigado pela sua avaliação.")
			return 0
		case errors.Is(err, feedback.ErrEmptyFeedback), errors.Is(err, feedback.ErrNoRating), errors.Is(err, feedback.ErrTooLong):
			ui.Fail("Erro: " + err.Error())
			return 2
		}

		ui.Fail("Erro ao Enviar: " + feedback.UserMessage)
		var se *feedback.SubmitError
		if errors.As(err, &se) {
			ui.Hint(se.Message)
		}
		if !r.ask("Tentar Novamente? [s/N] ") {
			screen.Dismiss()
			return 1
		}
		err = screen.Retry(r.ctx, r.app.Feedback)
	}
}
