package domain

type AuthState struct {
	IsLoggedIn bool
	Username   string
	Email      string
	CompanyID  string
}

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type NewCompany struct {
	CompanyName string `validate:"required"`
	CompanySize string `validate:"required"`
	AdminName   string `validate:"required"`
	AdminEmail  string `validate:"required,email"`
	Password    string `validate:"required,min=6"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) (Theme, bool) {
	switch Theme(raw) {
	case ThemeLight, ThemeDark:
		return Theme(raw), true
	}
	return "", false
}
