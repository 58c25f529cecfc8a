package schema

// CalibratedSensor is a record of calibrated_sensor.json: the mounting pose
// and intrinsics of one sensor.
type CalibratedSensor struct {
	Token            string           `json:"token"`
	SensorToken      string           `json:"sensor_token"`
	Translation      Vector3          `json:"translation"`
	Rotation         Quaternion       `json:"rotation"`
	CameraIntrinsic  CameraIntrinsic  `json:"camera_intrinsic"`
	CameraDistortion CameraDistortion `json:"camera_distortion"`
}

func (CalibratedSensor) Table() Name { return NameCalibratedSensor }

func (c CalibratedSensor) GetToken() string { return c.Token }

func (c CalibratedSensor) Validate() error {
	return collect(
		nonEmpty("token", c.Token),
		nonEmpty("sensor_token", c.SensorToken),
		c.CameraIntrinsic.validate(),
	)
}
