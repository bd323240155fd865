package contact

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   ValidationErrors
	}{
		{
			name:   "valid minimal",
			record: Record{FirstName: "John", LastName: "Doe"},
			want:   nil,
		},
		{
			name:   "missing both names",
			record: Record{},
			want: ValidationErrors{
				FieldFirstName: MsgFirstNameRequired,
				FieldLastName:  MsgLastNameRequired,
			},
		},
		{
			name:   "whitespace name is missing",
			record: Record{FirstName: "   ", LastName: "Doe"},
			want:   ValidationErrors{FieldFirstName: MsgFirstNameRequired},
		},
		{
			name:   "malformed work email",
			record: Record{FirstName: "A", LastName: "B", WorkEmail: "not-an-email"},
			want:   ValidationErrors{FieldWorkEmail: MsgInvalidEmail},
		},
		{
			name:   "malformed personal email",
			record: Record{FirstName: "A", LastName: "B", PersonalEmail: "a@b"},
			want:   ValidationErrors{FieldPersonalEmail: MsgInvalidEmail},
		},
		{
			name:   "emails are case-insensitive",
			record: Record{FirstName: "A", LastName: "B", WorkEmail: "San@Company.COM", PersonalEmail: "x.y+z@mail.example.org"},
			want:   nil,
		},
		{
			name:   "free-text fields unvalidated",
			record: Record{FirstName: "A", LastName: "B", Website: "not a url", WorkPhone: "call me", Title: "Sir"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.record)
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Validate()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestValidationErrors_ErrorFieldOrder(t *testing.T) {
	errs := ValidationErrors{
		FieldWorkEmail: MsgInvalidEmail,
		FieldFirstName: MsgFirstNameRequired,
	}

	got := errs.Error()

	first := strings.Index(got, FieldFirstName)
	work := strings.Index(got, FieldWorkEmail)
	if first < 0 || work < 0 || first > work {
		t.Errorf("Error() = %q, want firstName listed before workEmail", got)
	}
}

func TestRecord_GetSet(t *testing.T) {
	var r Record
	for _, f := range Fields {
		if !r.Set(f, f+"-value") {
			t.Fatalf("Set(%q) reported unknown field", f)
		}
	}
	for _, f := range Fields {
		if got := r.Get(f); got != f+"-value" {
			t.Errorf("Get(%q) = %q, want %q", f, got, f+"-value")
		}
	}
	if r.Set("nickname", "x") {
		t.Error("Set(unknown) should report false")
	}
	if got := r.Get("nickname"); got != "" {
		t.Errorf("Get(unknown) = %q, want empty", got)
	}
}

func TestRecord_FullName(t *testing.T) {
	tests := []struct {
		record Record
		want   string
	}{
		{Record{FirstName: "John", LastName: "Doe"}, "John Doe"},
		{Record{Title: "Dr.", FirstName: "John", LastName: "Doe"}, "Dr. John Doe"},
		{Record{Title: " ", FirstName: "John", LastName: "Doe"}, "John Doe"},
		{Record{LastName: "Doe"}, "Doe"},
		{Record{}, ""},
	}
	for _, tt := range tests {
		if got := tt.record.FullName(); got != tt.want {
			t.Errorf("FullName(%+v) = %q, want %q", tt.record, got, tt.want)
		}
	}
}

func TestForm_CoversEveryFieldInOrder(t *testing.T) {
	var keys []string
	for _, s := range Form {
		for _, f := range s.Fields {
			keys = append(keys, f.Key)
		}
	}

	if len(keys) != len(Fields) {
		t.Fatalf("Form has %d fields, want %d", len(keys), len(Fields))
	}
	for i := range Fields {
		if keys[i] != Fields[i] {
			t.Errorf("Form field %d = %q, want %q", i, keys[i], Fields[i])
		}
	}
}
