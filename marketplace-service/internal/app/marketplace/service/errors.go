package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrNotOwner          = errors.New("not the owner of the vehicle")
	ErrInvalidTransition = errors.New("invalid moderation status transition")
)
