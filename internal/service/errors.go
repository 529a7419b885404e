package service

import "errors"

// Ошибки операций леджера, показываются пользователю напрямую
var (
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid login details")
	ErrPendingApproval     = errors.New("account is pending approval")
	ErrInsufficientCredits = errors.New("not enough hours in your account")
	ErrSlotTaken           = errors.New("slot is already booked")
	ErrInvalidTransition   = errors.New("status transition is not allowed")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
)
