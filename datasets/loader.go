package datasets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/Noofbiz/t4devkit/schema"
	"github.com/sirupsen/logrus"
)

// DefaultFutureSeconds is the prediction horizon used for prediction3d.
const DefaultFutureSeconds = 6.0

type loadOptions struct {
	logger        logrus.FieldLogger
	filter        *FilterParams
	futureSeconds float64
}

// Option configures LoadDataset.
type Option func(*loadOptions)

// WithLogger sets the logger used while loading. Nothing is logged by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFilter drops the boxes that fail p from every frame.
func WithFilter(p FilterParams) Option {
	return func(o *loadOptions) { o.filter = &p }
}

// WithFutureSeconds sets the prediction horizon for prediction3d.
func WithFutureSeconds(s float64) Option {
	return func(o *loadOptions) { o.futureSeconds = s }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Tables returns the tables read for t: the required ones must exist under
// the dataset root, the optional ones are read when present.
func (t Task) Tables() (required, optional []schema.Name) {
	switch {
	case t.Is3D():
		required = []schema.Name{schema.NameSample, schema.NameEgoPose}
		optional = []schema.Name{
			schema.NameSampleData,
			schema.NameSampleAnnotation,
			schema.NameInstance,
			schema.NameCategory,
			schema.NameAttribute,
			schema.NameVisibility,
			schema.NameCalibratedSensor,
			schema.NameSensor,
		}
	case t.Is2D():
		required = []schema.Name{
			schema.NameSample,
			schema.NameEgoPose,
			schema.NameSampleData,
			schema.NameCalibratedSensor,
			schema.NameSensor,
		}
		optional = []schema.Name{
			schema.NameObjectAnn,
			schema.NameSurfaceAnn,
			schema.NameInstance,
			schema.NameCategory,
			schema.NameAttribute,
		}
	}
	return required, optional
}

// LoadDataset reads the dataset under root and assembles one frame per
// sample, in sample.json order, shaped for task.
//
// Segmentation tasks fail with ErrNotImplemented before anything is read.
// Missing required tables fail with schema.ErrIO, malformed ones with
// schema.ErrSchemaValidation or schema.ErrDuplicateToken, and unresolved or
// inconsistent references with schema.ErrReferentialIntegrity. No Dataset is
// returned on error.
func LoadDataset(root string, task Task, opts ...Option) (*Dataset, error) {
	if !slices.Contains(allTasks, task) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTask, string(task))
	}
	if task.IsSegmentation() {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, task)
	}

	o := loadOptions{logger: discardLogger(), futureSeconds: DefaultFutureSeconds}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithFields(logrus.Fields{"root": root, "task": task})

	start := time.Now()
	tables, err := loadTables(root, task, log)
	if err != nil {
		return nil, err
	}
	log.WithField("elapsed", time.Since(start)).Info("loaded tables")

	start = time.Now()
	j := newJoiner(task, tables, o, log)
	if err := j.check(); err != nil {
		return nil, err
	}
	log.WithField("elapsed", time.Since(start)).Debug("checked references")

	start = time.Now()
	frames, err := j.frames()
	if err != nil {
		return nil, err
	}
	objects := 0
	for i := range frames {
		objects += frames[i].NumObjects()
	}
	log.WithFields(logrus.Fields{
		"frames":  len(frames),
		"objects": objects,
		"elapsed": time.Since(start),
	}).Info("assembled frames")

	return newDataset(root, task, tables, frames), nil
}

func loadTables(root string, task Task, log logrus.FieldLogger) (*Tables, error) {
	t := &Tables{}
	loaders := map[schema.Name]func(required bool) error{
		schema.NameSample:           func(r bool) error { return loadInto(&t.Sample, root, r, log) },
		schema.NameEgoPose:          func(r bool) error { return loadInto(&t.EgoPose, root, r, log) },
		schema.NameSampleData:       func(r bool) error { return loadInto(&t.SampleData, root, r, log) },
		schema.NameSampleAnnotation: func(r bool) error { return loadInto(&t.SampleAnnotation, root, r, log) },
		schema.NameObjectAnn:        func(r bool) error { return loadInto(&t.ObjectAnn, root, r, log) },
		schema.NameSurfaceAnn:       func(r bool) error { return loadInto(&t.SurfaceAnn, root, r, log) },
		schema.NameInstance:         func(r bool) error { return loadInto(&t.Instance, root, r, log) },
		schema.NameCategory:         func(r bool) error { return loadInto(&t.Category, root, r, log) },
		schema.NameAttribute:        func(r bool) error { return loadInto(&t.Attribute, root, r, log) },
		schema.NameVisibility:       func(r bool) error { return loadInto(&t.Visibility, root, r, log) },
		schema.NameCalibratedSensor: func(r bool) error { return loadInto(&t.CalibratedSensor, root, r, log) },
		schema.NameSensor:           func(r bool) error { return loadInto(&t.Sensor, root, r, log) },
	}

	required, optional := task.Tables()
	for _, name := range required {
		if err := loaders[name](true); err != nil {
			return nil, err
		}
	}
	for _, name := range optional {
		if err := loaders[name](false); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// loadInto reads <root>/<table>.json into dst. An optional table that does
// not exist becomes an empty table.
func loadInto[T schema.Record](dst **schema.Table[T], root string, required bool, log logrus.FieldLogger) error {
	var zero T
	name := zero.Table()
	path := filepath.Join(root, name.Filename())

	store, err := schema.Load(name, path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			log.WithField("table", name).Debug("optional table not found")
			*dst, err = schema.NewTable[T](nil)
			return err
		}
		return fmt.Errorf("failed to load table %s: %w", name, err)
	}
	tbl, err := schema.As[T](store)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"table": name, "rows": tbl.Len()}).Debug("loaded table")
	*dst = tbl
	return nil
}
