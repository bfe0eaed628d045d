package models

// Subject is a teachable unit, either regular theory or a paired lab.
type Subject struct {
	ID    string `json:"id" validate:"required"`
	Type  string `json:"type" validate:"omitempty,oneof=theory lab"`
	IsLab bool   `json:"isLab"`
}

// Lab reports whether the subject occupies paired consecutive periods,
// normalising the two equivalent input shapes (Type and IsLab) into one flag.
func (s Subject) Lab() bool {
	return s.IsLab || s.Type == "lab"
}
