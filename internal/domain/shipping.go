package domain

// ShippingDetails carries the information needed to ship an order.
// Validated independently of cart state.
type ShippingDetails struct {
	Name     string `json:"name" validate:"required"`
	Line1    string `json:"line1" validate:"required"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip,omitempty"`
	Country  string `json:"country" validate:"required"`
	GiftWrap bool   `json:"giftWrap"`
}

var shippingMessages = map[string]string{
	"name":    "Please enter a name",
	"line1":   "Please enter the first address line",
	"city":    "Please enter a city name",
	"state":   "Please enter a state name",
	"country": "Please enter a country name",
}

// Validate checks the required-field rules.
// Returns a *ValidationError with a field->message mapping, or nil.
func (d *ShippingDetails) Validate() error {
	fields := checkStruct(d, map[string]string{
		"Name":    "name",
		"Line1":   "line1",
		"City":    "city",
		"State":   "state",
		"Country": "country",
	}, shippingMessages)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Op: "shipping.validate", Fields: fields}
}
