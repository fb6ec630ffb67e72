// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

/*
Package forms defines the client-side validation rule sets for the login and
registration forms.

Rules run before any network call: a form that fails here is never submitted.
The rule sets are immutable and defined at build time; messages are the
Russian strings the frontend has always shown, so the bounds AND the texts
are part of the compatibility contract.

Architecture:

  - RuleSet: ordered field rules for one form (Login, Register).
  - Gender: grammatical gender tag per field label, driving the verb form in
    length messages instead of hardcoding per-field text.
  - Result: field name -> first violated constraint's message.
*/
package forms

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// # Localized Messages

const (
	// MsgRequired is shown for any empty required field.
	MsgRequired = "Обязательное поле"

	// MsgInvalidEmail is shown when the email field is not email-shaped.
	MsgInvalidEmail = "Некорректный формат почты"
)

// Gender is the grammatical gender of a field label.
//
// Russian length messages conjugate "должен быть" by the label's gender
// ("Пароль должен…", "Почта должна…", "Имя должно…").
type Gender int

const (
	Masculine Gender = iota
	Feminine
	Neuter
)

// verb returns the gender-correct form of "must".
func (g Gender) verb() string {
	switch g {
	case Feminine:
		return "должна"
	case Neuter:
		return "должно"
	default:
		return "должен"
	}
}

// lengthMessage renders the shared length-violation template.
//
// comparator is "менее" for a minimum violation and "более" for a maximum one.
func lengthMessage(label string, gender Gender, comparator string, bound int) string {
	return fmt.Sprintf("%s %s быть не %s %d символов", label, gender.verb(), comparator, bound)
}

// # Rule Definitions

// FieldRule is the full set of constraints for a single form field.
//
// Constraints are evaluated in a fixed priority order: required, then
// minimum length, then maximum length, then format. Only the first failing
// constraint's message is reported per field.
type FieldRule struct {
	// Field is the submission key ("username", "email", "password").
	Field string
	// Label is the user-facing field label embedded in length messages.
	Label string
	// Gender is the grammatical gender of Label.
	Gender Gender

	Required bool
	// MinLen / MaxLen bound the Unicode character count; zero disables the bound.
	MinLen int
	MaxLen int
	// Email requires the value to be email-shaped.
	Email bool
}

// RuleSet is the immutable validation contract of one form.
type RuleSet struct {
	Name   string
	Fields []FieldRule
}

// Login validates the sign-in form.
//
// The username label has always read "Почта" on this form; it is kept
// verbatim because the message strings are part of the frontend contract.
var Login = RuleSet{
	Name: "login",
	Fields: []FieldRule{
		{Field: "username", Label: "Почта", Gender: Feminine, Required: true, MinLen: 4, MaxLen: 50},
		{Field: "password", Label: "Пароль", Gender: Masculine, Required: true, MinLen: 8, MaxLen: 14},
	},
}

// Register validates the sign-up form. Its username bounds deliberately
// differ from the login form's.
var Register = RuleSet{
	Name: "register",
	Fields: []FieldRule{
		{Field: "username", Label: "Имя", Gender: Neuter, Required: true, MinLen: 2, MaxLen: 20},
		{Field: "email", Label: "Почта", Gender: Feminine, Required: true, Email: true},
		{Field: "password", Label: "Пароль", Gender: Masculine, Required: true, MinLen: 8, MaxLen: 14},
	},
}

// # Evaluation

// Result maps a field name to the message of its first violated constraint.
// An empty Result means the form may be submitted.
type Result map[string]string

// Valid reports whether no field violated any constraint.
func (r Result) Valid() bool { return len(r) == 0 }

// Validate checks every field of the rule set independently against the
// submitted values and returns the per-field failures.
//
// It is a pure function of its input: no I/O, no state.
func (rs RuleSet) Validate(values map[string]string) Result {
	result := Result{}

	for _, rule := range rs.Fields {
		if message, ok := rule.check(values[rule.Field]); !ok {
			result[rule.Field] = message
		}
	}

	return result
}

// check evaluates one field's constraints in priority order and returns the
// first failure, if any.
func (rule FieldRule) check(value string) (message string, ok bool) {
	if rule.Required && value == "" {
		return MsgRequired, false
	}

	length := utf8.RuneCountInString(value)

	if rule.MinLen > 0 && length < rule.MinLen {
		return lengthMessage(rule.Label, rule.Gender, "менее", rule.MinLen), false
	}

	if rule.MaxLen > 0 && length > rule.MaxLen {
		return lengthMessage(rule.Label, rule.Gender, "более", rule.MaxLen), false
	}

	if rule.Email {
		if _, err := mail.ParseAddress(value); err != nil {
			return MsgInvalidEmail, false
		}
	}

	return "", true
}
