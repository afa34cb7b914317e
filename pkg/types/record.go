// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Role is the semantic field a text block contributes to.
type Role string

const (
	RoleNone        Role = "none"
	RoleName        Role = "name"
	RoleAffiliation Role = "affiliation"
	RoleSession     Role = "session"
	RoleTitle       Role = "title"
	RoleAbstract    Role = "abstract"
)

// Record is one extracted program entry: a presenter and their talk.
// It becomes one spreadsheet row.
type Record struct {
	// Name is the presenter name, including titles such as "Dr.".
	Name string `json:"name" yaml:"name"`

	// Affiliations is the presenter's affiliation lines joined in
	// encounter order.
	Affiliations string `json:"affiliations" yaml:"affiliations"`

	// Session is the session heading associated with the talk.
	Session string `json:"session" yaml:"session"`

	// Location is the presenter location. It is never populated.
	Location string `json:"location" yaml:"location"`

	// Title is the talk title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the presentation abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Page is the page on which the record's name block appeared.
	Page int `json:"page" yaml:"page"`
}
