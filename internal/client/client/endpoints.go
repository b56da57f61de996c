package client

// Endpoints are paths relative to the API base URL.
type Endpoints struct {
	Register          string
	VerifyRegisterOTP string
	Login             string
	SendPasswordOTP   string
	VerifyPasswordOTP string
	ResetPassword     string
	UpdateProfile     string
	GetBuildings      string
	AddBuilding       string
	UpdateBuilding    string
	SendBuildingOTP   string
	VerifyBuildingOTP string
	GetIcons          string
	GetPlacedIcons    string
	SavePlacedIcons   string
	DeletePlacedIcon  string
	SendLayoutOTP     string
	VerifyLayoutOTP   string
	AddLevelDetail    string
	GetLevelGallery   string
	GetFAQ            string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Register:          "register",
		VerifyRegisterOTP: "verify/registerotp",
		Login:             "login",
		SendPasswordOTP:   "send/forgot/passwordotp",
		VerifyPasswordOTP: "verify/passwordotp",
		ResetPassword:     "reset/password",
		UpdateProfile:     "update/profile",
		GetBuildings:      "get/building",
		AddBuilding:       "add/building",
		UpdateBuilding:    "update/building",
		SendBuildingOTP:   "send/building/otp",
		VerifyBuildingOTP: "verify/building/otp",
		GetIcons:          "get/icons",
		GetPlacedIcons:    "get/drag/icon",
		SavePlacedIcons:   "drag/icon/save",
		DeletePlacedIcon:  "delete/drag/icon",
		SendLayoutOTP:     "drag/icon/opt/send",
		VerifyLayoutOTP:   "drag/icon/opt/verify",
		AddLevelDetail:    "add/floor/detail",
		GetLevelGallery:   "get/floor/gallery",
		GetFAQ:            "get/faq",
	}
}
