package schema

// SampleAnnotation is a record of sample_annotation.json: a 3D bounding box
// of one instance in one sample. The annotations of an instance form a linked
// list through Prev and Next.
type SampleAnnotation struct {
	Token           string     `json:"token"`
	SampleToken     string     `json:"sample_token"`
	InstanceToken   string     `json:"instance_token"`
	AttributeTokens Tokens     `json:"attribute_tokens"`
	VisibilityToken string     `json:"visibility_token"`
	Translation     Vector3    `json:"translation"`
	Size            Vector3    `json:"size"` // width, length, height
	Rotation        Quaternion `json:"rotation"`
	NumLidarPts     int        `json:"num_lidar_pts"`
	NumRadarPts     int        `json:"num_radar_pts"`
	Next            string     `json:"next"`
	Prev            string     `json:"prev"`

	Velocity     *Vector3 `json:"velocity,omitempty"`
	Acceleration *Vector3 `json:"acceleration,omitempty"`
}

func (SampleAnnotation) Table() Name { return NameSampleAnnotation }

func (a SampleAnnotation) GetToken() string { return a.Token }

func (a SampleAnnotation) Validate() error {
	return collect(
		nonEmpty("token", a.Token),
		nonEmpty("sample_token", a.SampleToken),
		nonEmpty("instance_token", a.InstanceToken),
	)
}
