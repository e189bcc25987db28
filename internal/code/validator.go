package code

// Validator checks full codes against the salt the process was
// configured with. The salt is fixed at construction; rotating it
// invalidates every previously issued code.
type Validator struct {
	salt string
}

func NewValidator(salt string) *Validator {
	return &Validator{salt: salt}
}

// IsValid reports whether s is a well-formed code whose checksum
// matches its index under the validator's salt.
func (v *Validator) IsValid(s string) bool {
	s = Normalize(s)
	if !MatchesFormat(s) {
		return false
	}

	index := s[:6]
	checksum := s[7:]

	return checksum == Checksum(index, v.salt)
}
