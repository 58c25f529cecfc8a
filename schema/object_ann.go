package schema

// ObjectAnn is a record of object_ann.json: a 2D box and instance mask on a
// key-frame image.
type ObjectAnn struct {
	Token           string  `json:"token"`
	SampleDataToken string  `json:"sample_data_token"`
	InstanceToken   string  `json:"instance_token"`
	CategoryToken   string  `json:"category_token"`
	AttributeTokens Tokens  `json:"attribute_tokens"`
	Bbox            Roi     `json:"bbox"`
	Mask            RLEMask `json:"mask"`
}

func (ObjectAnn) Table() Name { return NameObjectAnn }

func (o ObjectAnn) GetToken() string { return o.Token }

func (o ObjectAnn) Validate() error {
	return collect(
		nonEmpty("token", o.Token),
		nonEmpty("sample_data_token", o.SampleDataToken),
		o.Mask.validate(),
	)
}

// Width returns the box width in pixels.
func (o ObjectAnn) Width() float64 { return o.Bbox.Width() }

// Height returns the box height in pixels.
func (o ObjectAnn) Height() float64 { return o.Bbox.Height() }
