package domain

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrAuthDisabled       = errors.New("authentication is not configured")
)

// OwnerSubject is the token subject of the single account that owns the
// planner.
const OwnerSubject = "owner"

const passwordCost = 12

func HashPassword(plainPassword string) (string, error) {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plainPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
