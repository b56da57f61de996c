package models

type User struct {
	ID           ID         `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	UserName     string     `json:"user_name"`
	Email        string     `json:"email"`
	PhoneNumber  FlexString `json:"phone_number"`
	Zipcode      FlexString `json:"zipcode"`
	ProfileImage string     `json:"profile_image"`
	Role         string     `json:"role"`
}

// LoginResult is what login and registration OTP verification hand back.
type LoginResult struct {
	Token string
	User  User
}

type Registration struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	UserName    string `json:"user_name" validate:"required,username"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,phone10"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role"`
}

type Credentials struct {
	UserName string `json:"user_name" validate:"required,username"`
	Password string `json:"password" validate:"required,min=6"`
}

type OTPCheck struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"`
}

type PasswordReset struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"-" validate:"required,eqfield=Password"`
}

type ProfileUpdate struct {
	FirstName    string `validate:"required"`
	LastName     string `validate:"required"`
	UserName     string `validate:"required,username"`
	Email        string `validate:"required,email"`
	PhoneNumber  string `validate:"required"`
	Zipcode      string `validate:"required"`
	ProfileImage *Photo `validate:"-"`
}
