// filepath: internal/services/user_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/Gary0302/Mind-BE/internal/repository"
	"github.com/stretchr/testify/assert"
)

// Validation failures must short-circuit before the repository is touched,
// so a nil repo is safe here.
func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(nil)

	tests := []struct {
		name string
		args repository.UserCreateArgs
	}{
		{"invalid email", repository.UserCreateArgs{Email: "not-an-email", Username: "gary", Password: "longenough"}},
		{"empty email", repository.UserCreateArgs{Username: "gary", Password: "longenough"}},
		{"empty username", repository.UserCreateArgs{Email: "gary@example.com", Password: "longenough"}},
		{"oversized username", repository.UserCreateArgs{Email: "gary@example.com", Username: strings.Repeat("g", 65), Password: "longenough"}},
		{"short password", repository.UserCreateArgs{Email: "gary@example.com", Username: "gary", Password: "short"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.args)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
