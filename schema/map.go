package schema

// Map is a record of map.json.
type Map struct {
	Token     string `json:"token"`
	LogTokens Tokens `json:"log_tokens"`
	Category  string `json:"category"`
	Filename  string `json:"filename"`
}

func (Map) Table() Name { return NameMap }

func (m Map) GetToken() string { return m.Token }

func (m Map) Validate() error {
	return nonEmpty("token", m.Token)
}
