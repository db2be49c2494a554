package http

import (
	"fmt"
	"time"

	"github.com/heymumma/heymumma/internal/account/domain"
	"github.com/heymumma/heymumma/pkg/heysdk"
)

// Accepted ranges for profile fields.
const (
	minAge, maxAge                 = 18, 50
	minHeight, maxHeight           = 100.0, 200.0
	minWeight, maxWeight           = 30.0, 150.0
	minPregnancies, maxPregnancies = 0, 10
)

// profileUpdate validates req and converts it to a domain update. The
// returned map is non-empty when any field is rejected.
func profileUpdate(req heysdk.ProfileRequest) (domain.ProfileUpdate, map[string]string) {
	problems := map[string]string{}

	if req.Age != nil && (*req.Age < minAge || *req.Age > maxAge) {
		problems["age"] = fmt.Sprintf("must be between %d and %d", minAge, maxAge)
	}
	if req.Height != nil && (*req.Height < minHeight || *req.Height > maxHeight) {
		problems["height"] = fmt.Sprintf("must be between %g and %g cm", minHeight, maxHeight)
	}
	if req.Weight != nil && (*req.Weight < minWeight || *req.Weight > maxWeight) {
		problems["weight"] = fmt.Sprintf("must be between %g and %g kg", minWeight, maxWeight)
	}
	if req.Pregnancies != nil && (*req.Pregnancies < minPregnancies || *req.Pregnancies > maxPregnancies) {
		problems["pregnancies"] = fmt.Sprintf("must be between %d and %d", minPregnancies, maxPregnancies)
	}

	var due *string
	if req.DueDate != nil {
		t, err := time.Parse(domain.DateLayout, *req.DueDate)
		if err != nil {
			problems["due_date"] = "must be a date in YYYY-MM-DD form"
		} else {
			s := t.Format(domain.DateLayout)
			due = &s
		}
	}

	return domain.ProfileUpdate{
		Age:         req.Age,
		Height:      req.Height,
		Weight:      req.Weight,
		Pregnancies: req.Pregnancies,
		DueDate:     due,
	}, problems
}

func accountResponse(a domain.Account) heysdk.AccountResponse {
	return heysdk.AccountResponse{
		Email:            a.Email,
		Name:             a.Name,
		Age:              a.Age,
		Height:           a.Height,
		Weight:           a.Weight,
		Pregnancies:      a.Pregnancies,
		DueDate:          a.DueDate,
		RegistrationDate: a.RegistrationDate,
		ProfileCompleted: a.ProfileCompleted,
	}
}
