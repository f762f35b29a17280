package user

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleSalesRep Role = "Sales Rep"
	RoleViewer   Role = "Viewer"
)

// User is a team member. The collection is static in this prototype; only
// reads are exposed.
type User struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Role   Role               `json:"role"`
	Email  string             `json:"email"`
	Avatar string             `json:"avatar"`
}
