package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"profile_form_go/models"

	"github.com/go-playground/validator/v10"
)

// Errors - сообщения об ошибках по полям формы.
// Каждая проверка строит карту заново.
type Errors map[models.Field]string

// Strings возвращает ошибки с ключами-строками для JSON-ответов.
func (e Errors) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for f, msg := range e {
		out[string(f)] = msg
	}
	return out
}

// Пробелом считаются и \v, и все разделители Unicode (NBSP, U+2000-U+200A,
// U+2028/U+2029, U+3000), и BOM.
var emailPattern = regexp.MustCompile(`^[^@\s\v\p{Z}\x{FEFF}]+@[^@\s\v\p{Z}\x{FEFF}]+\.[^@\s\v\p{Z}\x{FEFF}]+$`)

var messages = map[models.Field]string{
	models.FieldName:   "Name cannot be empty",
	models.FieldAge:    "Age cannot be empty",
	models.FieldGender: "Gender must be either male or female",
	models.FieldEmail:  "Invalid email format",
}

// profileForm описывает правила только для проверяемых полей.
type profileForm struct {
	Name   string `json:"name" validate:"required"`
	Age    string `json:"age" validate:"required"`
	Gender string `json:"gender" validate:"oneof=male female"`
	Email  string `json:"email" validate:"formemail"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Встроенное правило email строже формы; используем тот же шаблон, что и клиент.
	if err := v.RegisterValidation("formemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate проверяет профиль перед сохранением.
// Все правила независимы; isValid истинно, только если ошибок нет.
func Validate(p models.Profile) (Errors, bool) {
	errs := Errors{}

	err := validate.Struct(profileForm{
		Name:   p.Name,
		Age:    p.Age,
		Gender: p.Gender,
		Email:  p.Email,
	})

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			f := models.Field(fe.Field())
			if msg, ok := messages[f]; ok {
				errs[f] = msg
			}
		}
	}

	return errs, len(errs) == 0
}
