package model

import "time"

type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "Online"
	PaymentMethodOnSite PaymentMethod = "On-Site"
	PaymentMethodManual PaymentMethod = "Admin Added" // ручное зачисление администратором
)

type TransactionType string

const (
	TransactionTypePackage TransactionType = "Package"
	TransactionTypeSession TransactionType = "Session"
	TransactionTypeTopUp   TransactionType = "Manual Top-up"
)

type Transaction struct {
	ID          string          `json:"id"`
	TeacherID   string          `json:"teacherId"`
	TeacherName string          `json:"teacherName"`
	PackageID   string          `json:"packageId,omitempty"`
	PackageName string          `json:"packageName,omitempty"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	Method      PaymentMethod   `json:"method"`
	SlipImage   string          `json:"slipImage,omitempty"` // квитанция об оплате, непрозрачная строка
	Verified    bool            `json:"verified"`
	Type        TransactionType `json:"type"`
}
