package contact

import (
	"strings"
)

// Payload is the vCard text embedded in the QR code.
type Payload string

// Fixed lines framing every payload.
const (
	HeaderLine  = "BEGIN:VCARD"
	VersionLine = "VERSION:3.0"
	FooterLine  = "END:VCARD"
)

// property describes one optional payload line. The order of
// optionalProperties is the order lines appear in a payload.
type property struct {
	name  string // property name with parameters, e.g. "EMAIL;TYPE=WORK"
	field string
	text  bool // text values escape separators; URIs, emails and phones do not
}

var optionalProperties = []property{
	{name: "TITLE", field: FieldPosition, text: true},
	{name: "ORG", field: FieldCompany, text: true},
	{name: "EMAIL", field: FieldPersonalEmail},
	{name: "EMAIL;TYPE=WORK", field: FieldWorkEmail},
	{name: "TEL", field: FieldPersonalPhone},
	{name: "TEL;TYPE=WORK", field: FieldWorkPhone},
	{name: "URL;TYPE=Website", field: FieldWebsite},
	{name: "URL;TYPE=LinkedIn", field: FieldLinkedIn},
	{name: "URL;TYPE=Instagram", field: FieldInstagram},
	{name: "URL;TYPE=Facebook", field: FieldFacebook},
}

// Encode serializes r into a vCard 3.0 payload. Lines are separated by a
// single "\n" and the footer has no trailing newline. Optional fields that
// are empty after trimming produce no line. Encode never fails; empty names
// yield empty FN and N values.
func Encode(r Record) Payload {
	r = Normalize(r)

	var b strings.Builder
	writeLine(&b, HeaderLine)
	writeLine(&b, VersionLine)
	writeLine(&b, "FN:"+escapeText(r.FullName()))
	writeLine(&b, "N:"+escapeText(r.LastName)+";"+escapeText(r.FirstName)+";;;")

	for _, p := range optionalProperties {
		v := r.Get(p.field)
		if v == "" {
			continue
		}
		if p.text {
			v = escapeText(v)
		} else {
			v = foldNewlines(v)
		}
		writeLine(&b, p.name+":"+v)
	}

	b.WriteString(FooterLine)
	return Payload(b.String())
}

// Lines splits the payload into its lines.
func (p Payload) Lines() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), "\n")
}

// String returns the payload text.
func (p Payload) String() string { return string(p) }

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

var newlineFolder = strings.NewReplacer(
	`\`, `\\`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
)

// escapeText escapes a text value per RFC 2426 so separators inside user
// input cannot change the structure of the line.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// foldNewlines keeps a non-text value on a single line. Backslashes are
// doubled so a typed "\n" is not read back as a line break.
func foldNewlines(s string) string {
	return newlineFolder.Replace(s)
}
