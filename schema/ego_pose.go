package schema

// EgoPose is a record of ego_pose.json: the pose of the ego vehicle in the
// map frame at one timestamp.
type EgoPose struct {
	Token       string     `json:"token"`
	Translation Vector3    `json:"translation"`
	Rotation    Quaternion `json:"rotation"`
	// Timestamp is a unix time in microseconds.
	Timestamp int64 `json:"timestamp"`

	// Twist is (vx, vy, vz, yaw_rate, pitch_rate, roll_rate) in the ego frame.
	Twist *Vector6 `json:"twist,omitempty"`
	// Acceleration is (ax, ay, az) in the ego frame.
	Acceleration *Vector3 `json:"acceleration,omitempty"`
	// Geocoordinate is (latitude, longitude, altitude) on WGS 84.
	Geocoordinate *Vector3 `json:"geocoordinate,omitempty"`
}

func (EgoPose) Table() Name { return NameEgoPose }

func (e EgoPose) GetToken() string { return e.Token }

func (e EgoPose) Validate() error {
	return nonEmpty("token", e.Token)
}
