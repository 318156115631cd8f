package feedback

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrEmptyFeedback = errors.New("por favor, escreva seu feedback")
	ErrNoRating      = errors.New("por favor, selecione uma avaliação")
	ErrTooLong       = errors.New("o feedback pode ter no máximo 500 caracteres")
)

const (
	// TextMax caps the feedback text, in characters.
	TextMax = 500

	MinRating = 1
	MaxRating = 5

	defaultEmail    = "Não informado"
	timestampLayout = "02/01/2006, 15:04:05"
)

// RatingLabel names a star rating. Out-of-range values read "Não avaliado".
func RatingLabel(rating int) string {
	switch rating {
	case 1:
		return "Muito Ruim"
	case 2:
		return "Ruim"
	case 3:
		return "Regular"
	case 4:
		return "Bom"
	case 5:
		return "Excelente"
	}
	return "Não avaliado"
}

// Form is what the user typed. Rating 0 means no star selected.
type Form struct {
	Text   string
	Email  string
	Rating int
}

func (f Form) Validate() error {
	if strings.TrimSpace(f.Text) == "" {
		return ErrEmptyFeedback
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Text)) > TextMax {
		return ErrTooLong
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return ErrNoRating
	}
	return nil
}

func (f *Form) Clear() { *f = Form{} }

// Payload is the marshalled submission. It is built per attempt and discarded.
type Payload struct {
	Feedback   string
	Email      string
	Rating     int
	RatingText string
	Timestamp  string
	Platform   string
}

// Payload builds the submission for one attempt.
func (f Form) Payload(now time.Time, platform string) Payload {
	email := strings.TrimSpace(f.Email)
	if email == "" {
		email = defaultEmail
	}
	return Payload{
		Feedback:   strings.TrimSpace(f.Text),
		Email:      email,
		Rating:     f.Rating,
		RatingText: RatingLabel(f.Rating),
		Timestamp:  now.Local().Format(timestampLayout),
		Platform:   platform,
	}
}

// Fields lists the form fields in wire order.
func (p Payload) Fields() [][2]string {
	return [][2]string{
		{"feedback", p.Feedback},
		{"email", p.Email},
		{"rating", strconv.Itoa(p.Rating)},
		{"ratingText", p.RatingText},
		{"timestamp", p.Timestamp},
		{"platform", p.Platform},
	}
}
