package client

import (
	"math"
	"strings"
)

// ProfileUpdate is the editable part of a profile. Height and weight stay
// strings because that is how they are typed and transmitted.
type ProfileUpdate struct {
	Name   string
	Height string
	Weight string
	Avatar *Avatar
}

type PasswordChange struct {
	Current      string
	New          string
	Confirmation string
}

// ValidateProfile runs the checks that must pass before the update is sent:
// a name, and positive parseable height and weight.
func ValidateProfile(update ProfileUpdate) error {
	fields := make(map[string]string)

	if strings.TrimSpace(update.Name) == "" {
		fields["name"] = "Informe o nome."
	}
	if msg := checkMeasure(update.Height, "Informe a altura.", "Altura inválida."); msg != "" {
		fields["height"] = msg
	}
	if msg := checkMeasure(update.Weight, "Informe o peso.", "Peso inválido."); msg != "" {
		fields["weight"] = msg
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkMeasure(value, emptyMsg, invalidMsg string) string {
	if strings.TrimSpace(value) == "" {
		return emptyMsg
	}
	parsed, err := ParseMeasure(value)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) || parsed <= 0 {
		return invalidMsg
	}
	return ""
}

// ValidatePasswordChange requires every field and a matching confirmation.
func ValidatePasswordChange(change PasswordChange) error {
	fields := make(map[string]string)

	if change.Current == "" {
		fields["current_password"] = "Informe a senha atual."
	}
	if change.New == "" {
		fields["new_password"] = "Informe a nova senha."
	}
	if change.Confirmation == "" {
		fields["confirmation"] = "Confirme a nova senha."
	} else if change.New != "" && change.New != change.Confirmation {
		fields["confirmation"] = "As senhas não coincidem."
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
