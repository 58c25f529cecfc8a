package schema

// Sample is a record of sample.json: one annotated key frame. Samples of a
// scene form a doubly linked list through Prev and Next; the empty string
// ends the list in either direction.
type Sample struct {
	Token      string `json:"token"`
	Timestamp  int64  `json:"timestamp"`
	SceneToken string `json:"scene_token"`
	Next       string `json:"next"`
	Prev       string `json:"prev"`
}

func (Sample) Table() Name { return NameSample }

func (s Sample) GetToken() string { return s.Token }

func (s Sample) Validate() error {
	return nonEmpty("token", s.Token)
}

func (s Sample) HasNext() bool { return s.Next != "" }
func (s Sample) HasPrev() bool { return s.Prev != "" }
