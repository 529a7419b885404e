package model

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Session активная учётная запись портала. Одновременно активна максимум одна.
type Session struct {
	Role  Role   `json:"role"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)
