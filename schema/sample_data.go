package schema

import (
	"fmt"
	"slices"
	"strings"
)

// FileFormat is the format of a sample_data blob.
type FileFormat string

const (
	FileFormatJPG    FileFormat = "jpg"
	FileFormatPNG    FileFormat = "png"
	FileFormatPCD    FileFormat = "pcd"
	FileFormatBIN    FileFormat = "bin"
	FileFormatPCDBIN FileFormat = "pcd.bin"
)

var fileFormats = []FileFormat{FileFormatJPG, FileFormatPNG, FileFormatPCD, FileFormatBIN, FileFormatPCDBIN}

// Ext returns the file extension including the leading dot.
func (f FileFormat) Ext() string { return "." + string(f) }

func (f FileFormat) valid() bool { return slices.Contains(fileFormats, f) }

// SampleData is a record of sample_data.json: one sensor capture. Key-frame
// captures belong to a sample; the others only carry the timestamp.
type SampleData struct {
	Token                 string     `json:"token"`
	SampleToken           string     `json:"sample_token"`
	EgoPoseToken          string     `json:"ego_pose_token"`
	CalibratedSensorToken string     `json:"calibrated_sensor_token"`
	Filename              string     `json:"filename"`
	FileFormat            FileFormat `json:"fileformat"`
	Width                 int        `json:"width"`
	Height                int        `json:"height"`
	Timestamp             int64      `json:"timestamp"`
	IsKeyFrame            bool       `json:"is_key_frame"`
	Next                  string     `json:"next"`
	Prev                  string     `json:"prev"`

	IsValid      *bool   `json:"is_valid,omitempty"`
	InfoFilename *string `json:"info_filename,omitempty"`
	// AutolabelMetadata lists the models that labelled the capture, when it
	// was annotated automatically.
	AutolabelMetadata *[]AutolabelModel `json:"autolabel_metadata,omitempty"`
}

// AutolabelModel is a model used for automatic annotation.
type AutolabelModel struct {
	// Name may include the model version.
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	// Uncertainty is in [0, 1]; lower means more confident.
	Uncertainty *float64 `json:"uncertainty,omitempty"`
}

func (m AutolabelModel) validate(i int) error {
	field := fmt.Sprintf("autolabel_metadata[%d]", i)
	if m.Score < 0 || m.Score > 1 {
		return validationErrorf(field, "score %v out of range [0, 1]", m.Score)
	}
	if u := m.Uncertainty; u != nil && (*u < 0 || *u > 1) {
		return validationErrorf(field, "uncertainty %v out of range [0, 1]", *u)
	}
	return nil
}

func (SampleData) Table() Name { return NameSampleData }

func (d SampleData) GetToken() string { return d.Token }

func (d SampleData) Validate() error {
	var format error
	if !d.FileFormat.valid() {
		var names []string
		for _, f := range fileFormats {
			names = append(names, string(f))
		}
		format = validationErrorf("fileformat", "unknown format %q, want one of %s", d.FileFormat, strings.Join(names, ", "))
	}
	errs := []error{nonEmpty("token", d.Token), format}
	if d.AutolabelMetadata != nil {
		for i, m := range *d.AutolabelMetadata {
			errs = append(errs, m.validate(i))
		}
	}
	return collect(errs...)
}

// Valid reports whether the capture is usable. Rows without is_valid are.
func (d SampleData) Valid() bool {
	return d.IsValid == nil || *d.IsValid
}
