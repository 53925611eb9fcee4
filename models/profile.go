package models

import "fmt"

// Field - имя поля формы профиля. Совпадает с JSON-ключом в сохраненной записи.
type Field string

const (
	FieldName        Field = "name"
	FieldAge         Field = "age"
	FieldGender      Field = "gender"
	FieldLocation    Field = "location"
	FieldInterest1   Field = "interest1"
	FieldInterest2   Field = "interest2"
	FieldEmail       Field = "email"
	FieldUsername    Field = "username"
	FieldDisplayName Field = "displayName"
	FieldAvatarURI   Field = "avatarURI"
)

// Fields перечисляет поля в порядке их отображения в форме.
var Fields = []Field{
	FieldName,
	FieldAge,
	FieldGender,
	FieldLocation,
	FieldInterest1,
	FieldInterest2,
	FieldEmail,
	FieldUsername,
	FieldDisplayName,
	FieldAvatarURI,
}

// ParseField проверяет, что имя поля известно форме.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown profile field %q", name)
}

// Profile - единственная запись, которую редактирует форма.
// Все поля по умолчанию пустые строки.
type Profile struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	Interest1   string `json:"interest1"`
	Interest2   string `json:"interest2"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURI   string `json:"avatarURI"`
}

func (p *Profile) fieldPtr(f Field) *string {
	switch f {
	case FieldName:
		return &p.Name
	case FieldAge:
		return &p.Age
	case FieldGender:
		return &p.Gender
	case FieldLocation:
		return &p.Location
	case FieldInterest1:
		return &p.Interest1
	case FieldInterest2:
		return &p.Interest2
	case FieldEmail:
		return &p.Email
	case FieldUsername:
		return &p.Username
	case FieldDisplayName:
		return &p.DisplayName
	case FieldAvatarURI:
		return &p.AvatarURI
	}
	return nil
}

// Get возвращает значение поля. Для неизвестного поля - пустая строка.
func (p Profile) Get(f Field) string {
	if ptr := p.fieldPtr(f); ptr != nil {
		return *ptr
	}
	return ""
}

// With возвращает копию профиля, в которой изменено ровно одно поле.
// Неизвестное поле оставляет профиль без изменений.
func (p Profile) With(f Field, value string) Profile {
	if ptr := p.fieldPtr(f); ptr != nil {
		*ptr = value
	}
	return p
}

// ProfilePatch - частичное обновление профиля.
// nil означает, что поле не принадлежит этому обновлению и не будет затронуто.
type ProfilePatch struct {
	Name        *string
	Age         *string
	Gender      *string
	Location    *string
	Interest1   *string
	Interest2   *string
	Email       *string
	Username    *string
	DisplayName *string
	AvatarURI   *string
}

func (pp *ProfilePatch) fieldPtr(f Field) **string {
	switch f {
	case FieldName:
		return &pp.Name
	case FieldAge:
		return &pp.Age
	case FieldGender:
		return &pp.Gender
	case FieldLocation:
		return &pp.Location
	case FieldInterest1:
		return &pp.Interest1
	case FieldInterest2:
		return &pp.Interest2
	case FieldEmail:
		return &pp.Email
	case FieldUsername:
		return &pp.Username
	case FieldDisplayName:
		return &pp.DisplayName
	case FieldAvatarURI:
		return &pp.AvatarURI
	}
	return nil
}

// Set включает поле в обновление.
func (pp *ProfilePatch) Set(f Field, value string) {
	if ptr := pp.fieldPtr(f); ptr != nil {
		v := value
		*ptr = &v
	}
}

// Drop исключает поле из обновления.
func (pp *ProfilePatch) Drop(f Field) {
	if ptr := pp.fieldPtr(f); ptr != nil {
		*ptr = nil
	}
}

// Owned возвращает набор полей, которые затрагивает обновление.
func (pp ProfilePatch) Owned() []Field {
	var owned []Field
	for _, f := range Fields {
		if ptr := pp.fieldPtr(f); *ptr != nil {
			owned = append(owned, f)
		}
	}
	return owned
}

// Apply накладывает обновление на профиль (поверхностное слияние).
func (pp ProfilePatch) Apply(p Profile) Profile {
	for _, f := range Fields {
		if v := *pp.fieldPtr(f); v != nil {
			p = p.With(f, *v)
		}
	}
	return p
}
