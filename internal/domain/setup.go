package domain

// Setup choice keys, as the store API names them.
const (
	ChoiceOptedOutOfShippingSetup = "opted_out_of_shipping_setup"
	ChoiceOptedOutOfTaxesSetup    = "opted_out_of_taxes_setup"
	ChoiceFinishedInitialSetup    = "finished_initial_setup"
	ChoiceTriedCustomizer         = "tried_customizer_during_initial_setup"
)

var SetupChoiceKeys = []string{
	ChoiceOptedOutOfShippingSetup,
	ChoiceOptedOutOfTaxesSetup,
	ChoiceFinishedInitialSetup,
	ChoiceTriedCustomizer,
}

// SetupChoices records the merchant's answers during initial store setup.
type SetupChoices struct {
	OptedOutOfShippingSetup bool `json:"opted_out_of_shipping_setup"`
	OptedOutOfTaxesSetup    bool `json:"opted_out_of_taxes_setup"`
	FinishedInitialSetup    bool `json:"finished_initial_setup"`
	TriedCustomizer         bool `json:"tried_customizer_during_initial_setup"`
}

// With returns a copy of c with one choice set. ok is false for an unknown key.
func (c SetupChoices) With(key string, value bool) (SetupChoices, bool) {
	switch key {
	case ChoiceOptedOutOfShippingSetup:
		c.OptedOutOfShippingSetup = value
	case ChoiceOptedOutOfTaxesSetup:
		c.OptedOutOfTaxesSetup = value
	case ChoiceFinishedInitialSetup:
		c.FinishedInitialSetup = value
	case ChoiceTriedCustomizer:
		c.TriedCustomizer = value
	default:
		return c, false
	}
	return c, true
}
