package model

import "time"

type Teacher struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"` // bcrypt-хэш; тег нужен снимкам хранилища, ответы API строятся через teacherView, не сериализуйте Teacher напрямую
	Credits      float64   `json:"credits"`            // остаток предоплаченных часов
	IsApproved   bool      `json:"isApproved"`
	CreatedAt    time.Time `json:"createdAt"`
}
