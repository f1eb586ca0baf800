package features

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "feesetu_backend/internals/helpers/auth"
)

const (
	RoleAdmin       = "admin"
	RoleInstitution = "institution"
	RoleParent      = "parent"
)

// IsPlatformAdmin: only platform admins pass.
func IsPlatformAdmin() fiber.Handler {
	return requireRole(RoleAdmin, "platform admin only")
}

// IsParent: only parent accounts pass.
func IsParent() fiber.Handler {
	return requireRole(RoleParent, "parent account only")
}

// IsInstitutionStaff: only institution accounts pass, and the token must
// carry an institution scope.
func IsInstitutionStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.GetRoleFromToken(c) != RoleInstitution {
			return fiber.NewError(fiber.StatusForbidden, "institution account only")
		}
		if _, err := helperAuth.GetInstitutionIDFromToken(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func requireRole(role, msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.GetRoleFromToken(c) != role {
			return fiber.NewError(fiber.StatusForbidden, msg)
		}
		return c.Next()
	}
}
