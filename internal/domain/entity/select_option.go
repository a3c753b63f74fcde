package entity

// SelectOption is one entry of a patient or doctor drop-down: the key that
// gets submitted and the label shown next to it.
type SelectOption struct {
	Value string
	Label string
}
