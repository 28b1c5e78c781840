package types

import "github.com/golang-jwt/jwt/v5"

// Caller roles issued by the identity service.
const (
	RoleClient = "client"
	RoleWorker = "worker"
)

// Claims is the JWT payload supplied by the identity service.
// Role is an explicit claim; the engine never derives it from ID comparisons.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
