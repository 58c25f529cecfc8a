package schema

// SensorModality is the kind of a sensor.
type SensorModality string

const (
	ModalityLidar  SensorModality = "lidar"
	ModalityCamera SensorModality = "camera"
	ModalityRadar  SensorModality = "radar"
)

// Sensor is a record of sensor.json.
type Sensor struct {
	Token    string         `json:"token"`
	Channel  string         `json:"channel"`
	Modality SensorModality `json:"modality"`
}

func (Sensor) Table() Name { return NameSensor }

func (s Sensor) GetToken() string { return s.Token }

func (s Sensor) Validate() error {
	var modality error
	switch s.Modality {
	case ModalityLidar, ModalityCamera, ModalityRadar:
	default:
		modality = validationErrorf("modality", "unknown modality %q", s.Modality)
	}
	return collect(nonEmpty("token", s.Token), modality)
}
