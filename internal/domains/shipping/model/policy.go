package model

// Policy holds the free-shipping rule. It is the only place that decides
// which option is charged, so the quote and the payment request agree.
type Policy struct {
	FreeShippingThreshold int
}

func NewPolicy(threshold int) Policy {
	return Policy{FreeShippingThreshold: threshold}
}

// QualifiesForFree reports whether totalItems reaches the threshold
func (p Policy) QualifiesForFree(totalItems int) bool {
	return totalItems >= p.FreeShippingThreshold
}

// CanSelect rejects the free option for carts below the threshold
func (p Policy) CanSelect(id OptionID, totalItems int) error {
	if _, err := LookupOption(id); err != nil {
		return err
	}
	if id == OptionFree && !p.QualifiesForFree(totalItems) {
		return ErrFreeShippingNotEligible
	}
	return nil
}

// Effective returns the option actually charged. A qualifying cart always
// ships free whatever was selected. A non-qualifying cart that still has
// "free" selected (items were removed) falls back to the default option.
func (p Policy) Effective(selected OptionID, totalItems int) (Option, bool, error) {
	if p.QualifiesForFree(totalItems) {
		free, err := LookupOption(OptionFree)
		return free, true, err
	}

	if selected == OptionFree || selected == "" {
		selected = DefaultOption
	}

	opt, err := LookupOption(selected)
	if err != nil {
		return Option{}, false, err
	}
	return opt, false, nil
}
