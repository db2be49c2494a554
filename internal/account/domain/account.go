package domain

import "time"

// DateLayout is how due and registration dates are stored.
const DateLayout = "2006-01-02"

// Account is one row of the users table. The five profile fields are
// optional and stay nil until the user fills them in.
type Account struct {
	Email        string
	Name         string
	PasswordHash string // argon2id PHC, or plain text for rows that predate hashing

	Age         *int
	Height      *float64 // cm
	Weight      *float64 // kg
	Pregnancies *int
	DueDate     *string // YYYY-MM-DD

	RegistrationDate string
	ProfileCompleted bool
}

// HasCompleteProfile reports whether all five profile fields are present.
func (a Account) HasCompleteProfile() bool {
	return a.Age != nil && a.Height != nil && a.Weight != nil &&
		a.Pregnancies != nil && a.DueDate != nil
}

// Apply overlays the supplied fields of u onto a.
func (a *Account) Apply(u ProfileUpdate) {
	if u.Age != nil {
		a.Age = u.Age
	}
	if u.Height != nil {
		a.Height = u.Height
	}
	if u.Weight != nil {
		a.Weight = u.Weight
	}
	if u.Pregnancies != nil {
		a.Pregnancies = u.Pregnancies
	}
	if u.DueDate != nil {
		a.DueDate = u.DueDate
	}
}

// DueDateTime parses DueDate. ok is false when it is unset or malformed.
func (a Account) DueDateTime() (t time.Time, ok bool) {
	if a.DueDate == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, *a.DueDate)
	return t, err == nil
}

// ProfileUpdate is a partial profile edit; nil means unchanged.
type ProfileUpdate struct {
	Age         *int
	Height      *float64
	Weight      *float64
	Pregnancies *int
	DueDate     *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Age == nil && u.Height == nil && u.Weight == nil &&
		u.Pregnancies == nil && u.DueDate == nil
}
