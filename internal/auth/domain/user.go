package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleBorrower  Role = "borrower"
	RoleGuarantor Role = "guarantor"
	RoleInvestor  Role = "investor"
	RoleOfficer   Role = "officer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleBorrower, RoleGuarantor, RoleInvestor, RoleOfficer:
		return true
	}
	return false
}

type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	Role          Role
	EmailVerified bool
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Otp is the single live one-time code for a user. The code itself is never
// stored, only its bcrypt hash.
type Otp struct {
	UserID    string
	CodeHash  string
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}

func (o *Otp) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
