package jwt

import "github.com/golang-jwt/jwt/v5"

// GameClaims authorize the bearer to play one game. The game id is the
// registered subject.
type GameClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RolePlayer Role = "player"
)
