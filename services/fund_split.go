package services

import (
	"errors"
	"math"
)

// Fund split ratio over ten parts: 7 team, 2 mentor, 1 lab.
const (
	TeamShare   = 0.7
	MentorShare = 0.2
	LabShare    = 0.1
)

// FundSplit holds the computed shares of a payment amount.
type FundSplit struct {
	Team   float64 `json:"team_amount"`
	Mentor float64 `json:"mentor_amount"`
	Lab    float64 `json:"lab_amount"`
}

var ErrInvalidAmount = errors.New("amount must be a non-negative finite number")

// SplitFunds computes the team/mentor/lab shares of total at the fixed
// 70/20/10 ratio. Plain float64 multiplication, no rounding; display
// formatting is the caller's concern. A negative or non-finite total is
// rejected.
func SplitFunds(total float64) (FundSplit, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return FundSplit{}, ErrInvalidAmount
	}

	return FundSplit{
		Team:   total * TeamShare,
		Mentor: total * MentorShare,
		Lab:    total * LabShare,
	}, nil
}
