package user

// User represents a directory record as served by the upstream API.
type User struct {
	ID       int64   `json:"id"`       // ID is the unique identifier for the user
	Name     string  `json:"name"`     // Name is the full name of the user
	Username string  `json:"username"` // Username is the public handle, rendered as @username
	Email    string  `json:"email"`    // Email is the contact address of the user
	Phone    string  `json:"phone"`
	Website  string  `json:"website"` // Website is a bare host name without scheme
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

// Address is the postal address nested in a user record.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Geo holds coordinates exactly as the upstream API encodes them (strings).
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company describes the employer of a user.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}
