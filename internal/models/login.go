package models

// DeviceInfo describes the machine a login originates from.
type DeviceInfo struct {
	DeviceName string `json:"deviceName"`
	HostName   string `json:"hostName"`
	IPAddress  string `json:"ipAddress"`
	PlatformID int    `json:"platformId"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	UserName   string `json:"userName" validate:"required"`
	Password   string `json:"password" validate:"required"`
	LanguageID int    `json:"languageId" validate:"gte=1"`
	DeviceInfo
}

// Language is a selectable UI language mapped to a backend language id.
type Language struct {
	Code string
	Name string
	ID   int
}

// Languages lists the languages offered on the login screen.
var Languages = []Language{
	{Code: "en", Name: "English", ID: 1},
	{Code: "ms", Name: "Bahasa Melayu", ID: 2},
	{Code: "zh", Name: "中文", ID: 3},
	{Code: "vi", Name: "Tiếng Việt", ID: 4},
}

// LanguageByID returns the language with the given id, falling back to English.
func LanguageByID(id int) Language {
	for _, l := range Languages {
		if l.ID == id {
			return l
		}
	}
	return Languages[0]
}
