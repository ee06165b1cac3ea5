package validator

// Validator bundles tag validation and business rule validation behind
// a single dependency handed to services and handlers.
type Validator struct {
	business *BusinessValidator
}

// New creates a validator with all business rules registered.
func New() *Validator {
	return &Validator{
		business: NewBusinessValidator(),
	}
}

// GetBusinessValidator exposes the business rule validator.
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// ValidateStruct validates any tagged struct.
func (v *Validator) ValidateStruct(s interface{}) ValidationErrors {
	return v.business.Validate(s)
}
