// Package contact defines the contact record collected by the forms, its
// validation rules, and the vCard 3.0 payload it encodes to.
package contact

import "strings"

// Record is the fixed-shape set of fields a user fills in. Every field is free
// text; FirstName and LastName are required by Validate.
type Record struct {
	Title         string `json:"title,omitempty"         form:"title"`
	FirstName     string `json:"firstName"               form:"firstName"     validate:"required"`
	LastName      string `json:"lastName"                form:"lastName"      validate:"required"`
	PersonalEmail string `json:"personalEmail,omitempty" form:"personalEmail" validate:"omitempty,contactemail"`
	PersonalPhone string `json:"personalPhone,omitempty" form:"personalPhone"`
	Position      string `json:"position,omitempty"      form:"position"`
	Company       string `json:"company,omitempty"       form:"company"`
	WorkEmail     string `json:"workEmail,omitempty"     form:"workEmail"     validate:"omitempty,contactemail"`
	WorkPhone     string `json:"workPhone,omitempty"     form:"workPhone"`
	Website       string `json:"website,omitempty"       form:"website"`
	LinkedIn      string `json:"linkedin,omitempty"      form:"linkedin"`
	Instagram     string `json:"instagram,omitempty"     form:"instagram"`
	Facebook      string `json:"facebook,omitempty"      form:"facebook"`
}

// Honorifics lists the titles offered by the forms, in display order.
// The empty string means no title.
var Honorifics = []string{"", "Mr.", "Ms.", "Mrs.", "Dr.", "Prof."}

// Field keys used by forms and validation messages.
const (
	FieldTitle         = "title"
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldPersonalEmail = "personalEmail"
	FieldPersonalPhone = "personalPhone"
	FieldPosition      = "position"
	FieldCompany       = "company"
	FieldWorkEmail     = "workEmail"
	FieldWorkPhone     = "workPhone"
	FieldWebsite       = "website"
	FieldLinkedIn      = "linkedin"
	FieldInstagram     = "instagram"
	FieldFacebook      = "facebook"
)

// Fields lists every field key in form order.
var Fields = []string{
	FieldTitle,
	FieldFirstName,
	FieldLastName,
	FieldPersonalEmail,
	FieldPersonalPhone,
	FieldPosition,
	FieldCompany,
	FieldWorkEmail,
	FieldWorkPhone,
	FieldWebsite,
	FieldLinkedIn,
	FieldInstagram,
	FieldFacebook,
}

// Get returns the value of the field with the given key, or "" for an
// unknown key.
func (r Record) Get(field string) string {
	if p := r.ptr(field); p != nil {
		return *p
	}
	return ""
}

// Set assigns the value of the field with the given key. Unknown keys are
// ignored and reported as false.
func (r *Record) Set(field, value string) bool {
	p := r.ptr(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (r *Record) ptr(field string) *string {
	switch field {
	case FieldTitle:
		return &r.Title
	case FieldFirstName:
		return &r.FirstName
	case FieldLastName:
		return &r.LastName
	case FieldPersonalEmail:
		return &r.PersonalEmail
	case FieldPersonalPhone:
		return &r.PersonalPhone
	case FieldPosition:
		return &r.Position
	case FieldCompany:
		return &r.Company
	case FieldWorkEmail:
		return &r.WorkEmail
	case FieldWorkPhone:
		return &r.WorkPhone
	case FieldWebsite:
		return &r.Website
	case FieldLinkedIn:
		return &r.LinkedIn
	case FieldInstagram:
		return &r.Instagram
	case FieldFacebook:
		return &r.Facebook
	}
	return nil
}

// Normalize returns a copy of r with surrounding whitespace trimmed from
// every field.
func Normalize(r Record) Record {
	out := r
	for _, f := range Fields {
		out.Set(f, strings.TrimSpace(r.Get(f)))
	}
	return out
}

// FullName joins the non-empty title, first and last name with single spaces.
func (r Record) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{r.Title, r.FirstName, r.LastName} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
