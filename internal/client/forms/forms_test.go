// Copyright (c) 2026 Cloud Storage. All rights reserved.
// Author: qwsnxnjene

package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwsnxnjene/cloud-storage/internal/client/forms"
)

func TestLoginValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		values map[string]string
		want   forms.Result
	}{
		{
			name:   "valid credentials pass",
			values: map[string]string{"username": "user@example.com", "password": "secret12"},
			want:   forms.Result{},
		},
		{
			name:   "empty form reports required on every field",
			values: map[string]string{},
			want: forms.Result{
				"username": "Обязательное поле",
				"password": "Обязательное поле",
			},
		},
		{
			name:   "short username uses feminine verb form",
			values: map[string]string{"username": "abc", "password": "secret12"},
			want:   forms.Result{"username": "Почта должна быть не менее 4 символов"},
		},
		{
			name:   "password of seven characters is too short",
			values: map[string]string{"username": "user@example.com", "password": "1234567"},
			want:   forms.Result{"password": "Пароль должен быть не менее 8 символов"},
		},
		{
			name:   "password of eight characters passes",
			values: map[string]string{"username": "user@example.com", "password": "12345678"},
			want:   forms.Result{},
		},
		{
			name:   "password of fourteen characters passes",
			values: map[string]string{"username": "user@example.com", "password": "12345678901234"},
			want:   forms.Result{},
		},
		{
			name:   "password of fifteen characters is too long",
			values: map[string]string{"username": "user@example.com", "password": "123456789012345"},
			want:   forms.Result{"password": "Пароль должен быть не более 14 символов"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, forms.Login.Validate(testCase.values))
		})
	}
}

func TestRegisterValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		values map[string]string
		want   forms.Result
	}{
		{
			name: "valid registration passes",
			values: map[string]string{
				"username": "Ян",
				"email":    "yan@example.com",
				"password": "secret12",
			},
			want: forms.Result{},
		},
		{
			name: "empty username fails required before length",
			values: map[string]string{
				"username": "",
				"email":    "yan@example.com",
				"password": "secret12",
			},
			want: forms.Result{"username": "Обязательное поле"},
		},
		{
			name: "single-character username uses neuter verb form",
			values: map[string]string{
				"username": "Я",
				"email":    "yan@example.com",
				"password": "secret12",
			},
			want: forms.Result{"username": "Имя должно быть не менее 2 символов"},
		},
		{
			name: "username over twenty characters is too long",
			values: map[string]string{
				"username": "очень-длинное-имя-пользователя",
				"email":    "yan@example.com",
				"password": "secret12",
			},
			want: forms.Result{"username": "Имя должно быть не более 20 символов"},
		},
		{
			name: "malformed email fails format check",
			values: map[string]string{
				"username": "Ян",
				"email":    "not-an-email",
				"password": "secret12",
			},
			want: forms.Result{"email": "Некорректный формат почты"},
		},
		{
			name: "length violation wins over email format",
			values: map[string]string{
				"username": "Ян",
				"email":    "yan@example.com",
				"password": "short",
			},
			want: forms.Result{"password": "Пароль должен быть не менее 8 символов"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, forms.Register.Validate(testCase.values))
		})
	}
}

func TestValidateCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	// Eight Cyrillic letters are sixteen bytes but must satisfy a minimum of 8.
	result := forms.Login.Validate(map[string]string{
		"username": "user@example.com",
		"password": "парольно",
	})

	assert.True(t, result.Valid())
}
