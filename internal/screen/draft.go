package screen

import "alcyxob/exercise-screen/internal/domain"

// DraftField names an editable text field of the add form.
type DraftField string

const (
	FieldName DraftField = "name"
	FieldDesc DraftField = "desc"
)

// Draft is the in-progress add form. Values are kept exactly as typed;
// trimming happens on submit.
type Draft struct {
	Name  string          `json:"name"`
	Desc  string          `json:"desc"`
	Image domain.ImageRef `json:"image"`
}

func (d *Draft) set(field DraftField, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDesc:
		d.Desc = value
	default:
		return ErrUnknownField
	}
	return nil
}

// ImageButtonLabel is the picker button caption for the current draft.
func (d Draft) ImageButtonLabel() string {
	if d.Image.IsNone() {
		return "Pick Image"
	}
	return "Change Image"
}
