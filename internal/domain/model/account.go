package model

// Role of a signed-in user.
type Role string

// Roles.
const (
	RoleArtist    Role = "artist"
	RoleOrganizer Role = "organizer"
	RoleAudience  Role = "audience"
)

// User is the locally remembered session user.
type User struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Role  Role   `json:"role" validate:"required,oneof=artist organizer audience"`
}

// ArtistProfile is the editable profile of an artist user.
type ArtistProfile struct {
	Name     string `json:"name"`
	Genre    string `json:"genre"`
	Location string `json:"location"`
	Price    int    `json:"price" validate:"gte=0"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Banner   string `json:"banner"`
}
