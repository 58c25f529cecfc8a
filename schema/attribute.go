package schema

// Attribute is a record of attribute.json: a categorical property of an
// annotation, e.g. "vehicle_state.moving".
type Attribute struct {
	Token       string `json:"token"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (Attribute) Table() Name { return NameAttribute }

func (a Attribute) GetToken() string { return a.Token }

func (a Attribute) Validate() error {
	return nonEmpty("token", a.Token)
}
