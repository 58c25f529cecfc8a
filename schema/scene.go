package schema

// Scene is a record of scene.json: a contiguous recording.
type Scene struct {
	Token            string `json:"token"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	LogToken         string `json:"log_token"`
	NbrSamples       int    `json:"nbr_samples"`
	FirstSampleToken string `json:"first_sample_token"`
	LastSampleToken  string `json:"last_sample_token"`
}

func (Scene) Table() Name { return NameScene }

func (s Scene) GetToken() string { return s.Token }

func (s Scene) Validate() error {
	var count error
	if s.NbrSamples < 0 {
		count = validationErrorf("nbr_samples", "must be >= 0, got %d", s.NbrSamples)
	}
	return collect(nonEmpty("token", s.Token), count)
}
