package student

import (
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classflow/backend/core"
)

func newValidate() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate, translator
}

func TestPasswordPolicy(t *testing.T) {
	validate, translator := newValidate()

	ns := func(pwd string) NewStudent {
		return NewStudent{
			Username: "21103001",
			Name:     "Test Student",
			Email:    "test@test.test",
			Password: pwd,
		}
	}

	tests := []struct {
		name    string
		ns      NewStudent
		wantMsg string // "" means valid
	}{
		{name: "valid", ns: ns("LePassword123!")},
		{name: "too short", ns: ns("Le1!"), wantMsg: pwdMinLenText},
		{name: "whitespace", ns: ns("Le Password123!"), wantMsg: pwdNoSpaceText},
		{name: "all numeric", ns: ns("12345678901"), wantMsg: pwdNotAllNumText},
		{name: "no uppercase", ns: ns("lepassword123!"), wantMsg: pwdComplexityText},
		{name: "no digit", ns: ns("LePassword!"), wantMsg: pwdComplexityText},
		{name: "no special", ns: ns("LePassword123"), wantMsg: pwdComplexityText},
		{name: "similar to name", ns: ns("Test-Student1"), wantMsg: pwdAttrSimText},
		{name: "similar to email", ns: ns("Test@test.test1"), wantMsg: pwdAttrSimText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.ns)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Struct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Struct() error = nil, want error")
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error type = %T, want validator.ValidationErrors", err)
			}
			var msgs []string
			for _, fe := range vErrs {
				msgs = append(msgs, fe.Translate(translator))
			}
			if got := strings.Join(msgs, "; "); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("Struct() errors = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
