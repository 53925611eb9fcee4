package validation

import (
	"testing"

	"profile_form_go/models"

	"github.com/stretchr/testify/assert"
)

func validProfile() models.Profile {
	return models.Profile{
		Name:   "Ada",
		Age:    "36",
		Gender: "female",
		Email:  "ada@example.com",
	}
}

func TestValidateValidProfile(t *testing.T) {
	errs, ok := Validate(validProfile())
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateEmptyProfile(t *testing.T) {
	errs, ok := Validate(models.Profile{})
	assert.False(t, ok)
	assert.Equal(t, Errors{
		models.FieldName:   "Name cannot be empty",
		models.FieldAge:    "Age cannot be empty",
		models.FieldGender: "Gender must be either male or female",
		models.FieldEmail:  "Invalid email format",
	}, errs)
}

func TestValidateEmptyName(t *testing.T) {
	p := validProfile()
	p.Name = ""

	errs, ok := Validate(p)
	assert.False(t, ok)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, models.FieldName)
}

func TestValidateGender(t *testing.T) {
	tests := []struct {
		gender string
		valid  bool
	}{
		{"male", true},
		{"female", true},
		{"", false},
		{"Male", false},
		{"other", false},
		{" male", false},
	}
	for _, tt := range tests {
		t.Run(tt.gender, func(t *testing.T) {
			p := validProfile()
			p.Gender = tt.gender

			errs, ok := Validate(p)
			assert.Equal(t, tt.valid, ok)
			_, hasErr := errs[models.FieldGender]
			assert.Equal(t, !tt.valid, hasErr)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"x.y@z.org", true},
		{"abc", false},
		{"a@b", false},
		{"a b@c.com", false},
		{"", false},
		{"a@@b.com", false},
		{"a@b.c d", false},
		{"a\vb@c.com", false},
		{"a\u00a0b@c.com", false},
		{"a@b\u2003.com", false},
		{"a\u3000b@c.com", false},
		{"a@b.c\u2028om", false},
		{"\ufeffa@b.com", false},
		{"тест@пример.рф", true},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			p := validProfile()
			p.Email = tt.email

			errs, ok := Validate(p)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.valid, emailPattern.MatchString(tt.email))
			if !tt.valid {
				assert.Equal(t, "Invalid email format", errs[models.FieldEmail])
			}
		})
	}
}

func TestValidateIgnoresUncheckedFields(t *testing.T) {
	p := validProfile()
	p.Age = "-5"
	p.AvatarURI = "not a url"

	_, ok := Validate(p)
	assert.True(t, ok)
}

func TestErrorsStrings(t *testing.T) {
	errs, _ := Validate(models.Profile{Name: "x", Age: "1", Gender: "male"})
	assert.Equal(t, map[string]string{"email": "Invalid email format"}, errs.Strings())
}
