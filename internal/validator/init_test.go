package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkValidation(t *testing.T) {
	type seat struct {
		Mark string `validate:"mark"`
	}

	tests := []struct {
		mark    string
		wantErr bool
	}{
		{mark: "X"},
		{mark: "O"},
		{mark: "x", wantErr: true},
		{mark: "", wantErr: true},
		{mark: "XO", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("mark "+tt.mark, func(t *testing.T) {
			err := GetValidator().Struct(seat{Mark: tt.mark})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
