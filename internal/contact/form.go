package contact

// FormField describes how a form presents one Record field.
type FormField struct {
	Key         string
	Label       string
	Placeholder string
	Kind        string // HTML input type: "text", "email", "tel", "url", or "select" for the title
}

// FormSection groups fields under a heading.
type FormSection struct {
	Heading string
	Fields  []FormField
}

// Form is the field layout shared by the terminal and browser forms. Every
// key in Fields appears exactly once, in the same order.
var Form = []FormSection{
	{
		Heading: "Personal Details",
		Fields: []FormField{
			{Key: FieldTitle, Label: "Title", Kind: "select"},
			{Key: FieldFirstName, Label: "First Name", Placeholder: "First Name", Kind: "text"},
			{Key: FieldLastName, Label: "Last Name", Placeholder: "Doe", Kind: "text"},
			{Key: FieldPersonalEmail, Label: "Personal Email", Placeholder: "you@example.com", Kind: "email"},
			{Key: FieldPersonalPhone, Label: "Personal Phone", Placeholder: "+977 98XXXXXXXX", Kind: "tel"},
		},
	},
	{
		Heading: "Professional Details",
		Fields: []FormField{
			{Key: FieldPosition, Label: "Position", Placeholder: "Software Engineer", Kind: "text"},
			{Key: FieldCompany, Label: "Company", Placeholder: "Tech Company Inc.", Kind: "text"},
			{Key: FieldWorkEmail, Label: "Work Email", Placeholder: "san@company.com", Kind: "email"},
			{Key: FieldWorkPhone, Label: "Work Phone", Placeholder: "+977 (01) 123-4567", Kind: "tel"},
			{Key: FieldWebsite, Label: "Website", Placeholder: "https://yourwebsite.com", Kind: "url"},
		},
	},
	{
		Heading: "Social Network",
		Fields: []FormField{
			{Key: FieldLinkedIn, Label: "LinkedIn", Placeholder: "https://linkedin.com/in/username", Kind: "url"},
			{Key: FieldInstagram, Label: "Instagram", Placeholder: "https://instagram.com/username", Kind: "url"},
			{Key: FieldFacebook, Label: "Facebook", Placeholder: "https://facebook.com/username", Kind: "url"},
		},
	},
}

// PreviewPlaceholder is shown where the QR code goes before anything is
// generated.
const PreviewPlaceholder = `Fill out the form and click "Generate QR Code" to see your QR code here`
