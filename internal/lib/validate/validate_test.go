package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordOK(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"валидный пароль", "Password1", true},
		{"короче 8 символов", "Pass1", false},
		{"без верхнего регистра", "password1", false},
		{"без нижнего регистра", "PASSWORD1", false},
		{"без цифры", "Passwordd", false},
		{"пустой", "", false},
		{"ровно 8 символов", "Abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordOK(tt.password))
		})
	}
}

func TestCustomTags(t *testing.T) {
	type form struct {
		Username string `validate:"username_format"`
		Password string `validate:"password_complexity"`
		Terms    bool   `validate:"terms_accepted"`
	}

	v := New()

	tests := []struct {
		name    string
		form    form
		wantErr bool
	}{
		{
			name:    "всё валидно",
			form:    form{Username: "new_student", Password: "Password1", Terms: true},
			wantErr: false,
		},
		{
			name:    "имя короче 3 символов",
			form:    form{Username: "ab", Password: "Password1", Terms: true},
			wantErr: true,
		},
		{
			name:    "имя с недопустимыми символами",
			form:    form{Username: "new student!", Password: "Password1", Terms: true},
			wantErr: true,
		},
		{
			name:    "имя длиннее 30 символов",
			form:    form{Username: "a234567890a234567890a234567890x", Password: "Password1", Terms: true},
			wantErr: true,
		},
		{
			name:    "слабый пароль",
			form:    form{Username: "new_student", Password: "password", Terms: true},
			wantErr: true,
		},
		{
			name:    "условия не приняты",
			form:    form{Username: "new_student", Password: "Password1", Terms: false},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
