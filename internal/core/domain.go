package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Expense TransactionType = "Expense"
	Income  TransactionType = "Income"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. Values produced by
	// NewTransaction always satisfy Validate.
	Transaction struct {
		ID       string
		Name     string
		Amount   Money
		Date     time.Time
		Type     TransactionType
		Category string // empty when unset
	}

	// Input carries user supplied, untrusted values for a new transaction.
	Input struct {
		Name     string
		Amount   Money
		Date     time.Time
		Type     TransactionType
		Category string
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyID       = errors.New("empty id")
	ErrZeroDate      = errors.New("date cannot be zero")
	ErrDuplicateID   = errors.New("duplicate id")
)

// ValidationError reports which field of a transaction was rejected.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by rejected input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseType maps free text to a transaction type. Blank input yields Expense.
func ParseType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expense":
		return Expense, nil
	case "income":
		return Income, nil
	default:
		return "", &ValidationError{Field: "type", Err: ErrInvalidType}
	}
}

func (t TransactionType) IsValid() bool {
	return t == Expense || t == Income
}

func (t TransactionType) String() string {
	return string(t)
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewTransaction normalizes in and assigns a fresh id. Blank type defaults to
// Expense, a zero date defaults to now and a blank category is left unset.
func NewTransaction(in Input, now time.Time) (Transaction, error) {
	t := Transaction{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Amount:   in.Amount,
		Date:     in.Date,
		Type:     in.Type,
		Category: strings.TrimSpace(in.Category),
	}
	if t.Type == "" {
		t.Type = Expense
	}
	if t.Date.IsZero() {
		t.Date = now
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return &ValidationError{Field: "id", Err: ErrEmptyID}
	}
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if len(t.Name) > 200 {
		return &ValidationError{Field: "name", Err: errors.New("name too long (max 200 characters)")}
	}
	if err := t.Amount.Validate(); err != nil {
		return &ValidationError{Field: "amount", Err: err}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Err: ErrZeroDate}
	}
	if !t.Type.IsValid() {
		return &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	return nil
}

func (t Transaction) IsIncome() bool {
	return t.Type == Income
}
