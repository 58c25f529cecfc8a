package schema

// SurfaceAnn is a record of surface_ann.json: a region mask of a surface
// class (road, sidewalk, ...) on a key-frame image.
type SurfaceAnn struct {
	Token           string  `json:"token"`
	SampleDataToken string  `json:"sample_data_token"`
	CategoryToken   string  `json:"category_token"`
	Mask            RLEMask `json:"mask"`
	// InstanceToken is only present in datasets that track surfaces.
	InstanceToken *string `json:"instance_token,omitempty"`
}

func (SurfaceAnn) Table() Name { return NameSurfaceAnn }

func (s SurfaceAnn) GetToken() string { return s.Token }

func (s SurfaceAnn) Validate() error {
	return collect(
		nonEmpty("token", s.Token),
		nonEmpty("sample_data_token", s.SampleDataToken),
		s.Mask.validate(),
	)
}

// Instance returns the instance token, or "" when there is none.
func (s SurfaceAnn) Instance() string {
	if s.InstanceToken == nil {
		return ""
	}
	return *s.InstanceToken
}
