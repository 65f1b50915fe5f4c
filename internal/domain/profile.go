package domain

// Profile is the merchant account record. The id matches the auth
// collaborator's user id.
type Profile struct {
	ID             string
	FullName       *string
	RestaurantName *string
	Email          *string
	Phone          *string
}
