package schema

// Log is a record of log.json: where and with which vehicle a recording was
// captured.
type Log struct {
	Token        string `json:"token"`
	Logfile      string `json:"logfile"`
	Vehicle      string `json:"vehicle"`
	DataCaptured string `json:"data_captured"`
	Location     string `json:"location"`
}

func (Log) Table() Name { return NameLog }

func (l Log) GetToken() string { return l.Token }

func (l Log) Validate() error {
	return nonEmpty("token", l.Token)
}
