package student

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/stats"
)

type Student struct {
	ID        int         `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Class     string      `json:"class" db:"class"` // free-text class label
	ClassID   null.Int    `json:"class_id" db:"class_id"`
	DOB       core.Date   `json:"dob" db:"dob"`
	AvatarURL null.String `json:"avatar_url" db:"avatar_url"`
}

func (s Student) Ref() stats.StudentRef {
	return stats.StudentRef{ID: s.ID, Name: s.Name, Class: s.Class}
}

// Refs projects students onto the fields aggregates display.
func Refs(students []Student) []stats.StudentRef {
	refs := make([]stats.StudentRef, 0, len(students))
	for _, s := range students {
		refs = append(refs, s.Ref())
	}
	return refs
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name      string      `json:"name" validate:"required"`
	Class     string      `json:"class" validate:"required"`
	ClassID   null.Int    `json:"class_id" validate:"omitempty,gt=0"`
	DOB       core.Date   `json:"dob" validate:"required"`
	AvatarURL null.String `json:"avatar_url" validate:"omitempty,max=512"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Class = core.CleanString(ns.Class)
	if ns.AvatarURL.Valid {
		ns.AvatarURL.String = core.CleanString(ns.AvatarURL.String)
		ns.AvatarURL.Valid = ns.AvatarURL.String != ""
	}
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Nil fields are left unchanged.
type UpdateStudent struct {
	Name      *string    `json:"name" validate:"omitempty,min=1"`
	Class     *string    `json:"class" validate:"omitempty,min=1"`
	ClassID   *int       `json:"class_id" validate:"omitempty,gt=0"`
	DOB       *core.Date `json:"dob"`
	AvatarURL *string    `json:"avatar_url" validate:"omitempty,max=512"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	for _, s := range []*string{us.Name, us.Class, us.AvatarURL} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	if us.DOB != nil && us.DOB.IsZero() {
		return core.NewValidationError(nil, core.FieldError{Field: "dob", Error: "this field cannot be empty"})
	}
	return validate.Struct(us)
}

// apply returns orig with the provided fields replaced.
func (us UpdateStudent) apply(orig Student) Student {
	if us.Name != nil && *us.Name != "" {
		orig.Name = *us.Name
	}
	if us.Class != nil && *us.Class != "" {
		orig.Class = *us.Class
	}
	if us.ClassID != nil {
		orig.ClassID = null.IntFrom(*us.ClassID)
	}
	if us.DOB != nil {
		orig.DOB = *us.DOB
	}
	if us.AvatarURL != nil {
		orig.AvatarURL = null.NewString(*us.AvatarURL, *us.AvatarURL != "")
	}
	return orig
}

type QueryFilter struct {
	Search  string `query:"search"`
	Class   string `query:"class"`
	ClassID int    `query:"class_id"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Class = core.CleanString(qf.Class)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Class == "" && qf.ClassID == 0
}
