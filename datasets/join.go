package datasets

import (
	"fmt"

	"github.com/Noofbiz/t4devkit/schema"
	"github.com/sirupsen/logrus"
)

// maxVelocityTimeDiff bounds the time between the two annotations used to
// estimate a velocity, in seconds. Centred differences allow twice as much.
const maxVelocityTimeDiff = 1.5

type joiner struct {
	task Task
	t    *Tables
	opts loadOptions
	log  logrus.FieldLogger

	annsBySample     map[string][]schema.SampleAnnotation
	objectsBySample  map[string][]schema.ObjectAnn
	surfacesBySample map[string][]schema.SurfaceAnn
	keyFrames        map[string]schema.SampleData
	egoByTime        map[int64]schema.EgoPose
}

func newJoiner(task Task, t *Tables, opts loadOptions, log logrus.FieldLogger) *joiner {
	j := &joiner{
		task:             task,
		t:                t,
		opts:             opts,
		log:              log,
		annsBySample:     map[string][]schema.SampleAnnotation{},
		objectsBySample:  map[string][]schema.ObjectAnn{},
		surfacesBySample: map[string][]schema.SurfaceAnn{},
		keyFrames:        map[string]schema.SampleData{},
		egoByTime:        map[int64]schema.EgoPose{},
	}
	for _, e := range t.EgoPose.All() {
		if _, ok := j.egoByTime[e.Timestamp]; !ok {
			j.egoByTime[e.Timestamp] = e
		}
	}
	if t.SampleData != nil {
		lidar := map[string]bool{}
		for _, sd := range t.SampleData.All() {
			if !sd.IsKeyFrame || sd.SampleToken == "" || lidar[sd.SampleToken] {
				continue
			}
			if j.isLidar(sd) {
				j.keyFrames[sd.SampleToken] = sd
				lidar[sd.SampleToken] = true
				continue
			}
			if _, ok := j.keyFrames[sd.SampleToken]; !ok {
				j.keyFrames[sd.SampleToken] = sd
			}
		}
	}
	return j
}

// isLidar reports whether sd resolves to a lidar sensor. Unresolved or absent
// sensor tables count as not lidar; references are checked elsewhere.
func (j *joiner) isLidar(sd schema.SampleData) bool {
	if j.t.CalibratedSensor == nil || j.t.Sensor == nil {
		return false
	}
	cs, ok := j.t.CalibratedSensor.Get(sd.CalibratedSensorToken)
	if !ok {
		return false
	}
	sensor, ok := j.t.Sensor.Get(cs.SensorToken)
	return ok && sensor.Modality == schema.ModalityLidar
}

func integrityErrorf(table schema.Name, token, field, format string, args ...any) error {
	return &schema.Error{
		Kind:  schema.ErrReferentialIntegrity,
		Table: table,
		Index: -1,
		Token: token,
		Field: field,
		Err:   fmt.Errorf(format, args...),
	}
}

// check verifies the references the task relies on and builds the per-sample
// annotation indexes.
func (j *joiner) check() error {
	if err := j.checkSamples(); err != nil {
		return err
	}
	if j.task.Is3D() {
		for _, a := range j.t.SampleAnnotation.All() {
			if !j.t.Sample.Has(a.SampleToken) {
				return schema.ReferenceError(schema.NameSampleAnnotation, a.Token, "sample_token", a.SampleToken)
			}
			j.annsBySample[a.SampleToken] = append(j.annsBySample[a.SampleToken], a)
		}
		if j.task.tracksInstances() {
			if err := j.checkInstances(); err != nil {
				return err
			}
		}
		return nil
	}

	for _, o := range j.t.ObjectAnn.All() {
		sample, err := j.sampleOf(schema.NameObjectAnn, o.Token, o.SampleDataToken)
		if err != nil {
			return err
		}
		j.objectsBySample[sample] = append(j.objectsBySample[sample], o)
	}
	for _, s := range j.t.SurfaceAnn.All() {
		sample, err := j.sampleOf(schema.NameSurfaceAnn, s.Token, s.SampleDataToken)
		if err != nil {
			return err
		}
		j.surfacesBySample[sample] = append(j.surfacesBySample[sample], s)
	}
	return nil
}

// sampleOf resolves the sample of an image annotation through its sample_data.
func (j *joiner) sampleOf(table schema.Name, token, sampleDataToken string) (string, error) {
	sd, ok := j.t.SampleData.Get(sampleDataToken)
	if !ok {
		return "", schema.ReferenceError(table, token, "sample_data_token", sampleDataToken)
	}
	if !j.t.Sample.Has(sd.SampleToken) {
		return "", schema.ReferenceError(schema.NameSampleData, sd.Token, "sample_token", sd.SampleToken)
	}
	return sd.SampleToken, nil
}

// checkSamples verifies that the samples form consistent, acyclic lists.
func (j *joiner) checkSamples() error {
	samples := j.t.Sample
	for _, s := range samples.All() {
		if s.Next != "" {
			n, ok := samples.Get(s.Next)
			if !ok {
				return schema.ReferenceError(schema.NameSample, s.Token, "next", s.Next)
			}
			if n.Prev != s.Token {
				return integrityErrorf(schema.NameSample, s.Token, "next", "next sample %q has prev %q", n.Token, n.Prev)
			}
		}
		if s.Prev != "" {
			p, ok := samples.Get(s.Prev)
			if !ok {
				return schema.ReferenceError(schema.NameSample, s.Token, "prev", s.Prev)
			}
			if p.Next != s.Token {
				return integrityErrorf(schema.NameSample, s.Token, "prev", "previous sample %q has next %q", p.Token, p.Next)
			}
		}
	}

	// With consistent links every list starting at a head is finite and the
	// samples not reached from any head form cycles.
	reached := make(map[string]bool, samples.Len())
	for _, s := range samples.All() {
		if s.Prev != "" {
			continue
		}
		for cur := s; ; {
			reached[cur.Token] = true
			if cur.Next == "" {
				break
			}
			cur, _ = samples.Get(cur.Next)
		}
	}
	for _, s := range samples.All() {
		if !reached[s.Token] {
			return integrityErrorf(schema.NameSample, s.Token, "next", "sample is part of a cycle")
		}
	}
	return nil
}

// checkInstances walks the annotation chain of every instance.
func (j *joiner) checkInstances() error {
	anns := j.t.SampleAnnotation
	for _, inst := range j.t.Instance.All() {
		if inst.FirstAnnotationToken == "" {
			if inst.LastAnnotationToken != "" {
				return integrityErrorf(schema.NameInstance, inst.Token, "first_annotation_token", "empty while last_annotation_token is %q", inst.LastAnnotationToken)
			}
			continue
		}

		seen := map[string]bool{}
		field, from := "first_annotation_token", inst.Token
		table := schema.NameInstance
		prev, last := "", ""
		for tok := inst.FirstAnnotationToken; tok != ""; {
			if seen[tok] {
				return integrityErrorf(schema.NameInstance, inst.Token, "first_annotation_token", "annotation chain revisits %q", tok)
			}
			seen[tok] = true

			a, ok := anns.Get(tok)
			if !ok {
				return schema.ReferenceError(table, from, field, tok)
			}
			if a.InstanceToken != inst.Token {
				return integrityErrorf(schema.NameSampleAnnotation, a.Token, "instance_token", "in the chain of instance %q but refers to %q", inst.Token, a.InstanceToken)
			}
			if a.Prev != prev {
				return integrityErrorf(schema.NameSampleAnnotation, a.Token, "prev", "expected %q, got %q", prev, a.Prev)
			}
			prev, last = tok, tok
			table, from, field = schema.NameSampleAnnotation, tok, "next"
			tok = a.Next
		}
		if last != inst.LastAnnotationToken {
			return integrityErrorf(schema.NameInstance, inst.Token, "last_annotation_token", "chain ends at %q", last)
		}
		if len(seen) != inst.NbrAnnotations {
			j.log.WithFields(logrus.Fields{
				"instance": inst.Token,
				"expected": inst.NbrAnnotations,
				"found":    len(seen),
			}).Warn("nbr_annotations does not match the annotation chain")
		}
	}
	return nil
}

func (j *joiner) frames() ([]Frame, error) {
	frames := make([]Frame, 0, j.t.Sample.Len())
	for i, s := range j.t.Sample.All() {
		ego, err := j.egoPose(s)
		if err != nil {
			return nil, err
		}
		f := Frame{Index: i, UnixTime: s.Timestamp, Sample: s, EgoPose: ego}

		if j.task.Is3D() {
			if f.Objects3D, err = j.objects3D(s); err != nil {
				return nil, err
			}
		} else {
			if f.Objects2D, err = j.objects2D(s); err != nil {
				return nil, err
			}
			if f.Surfaces, err = j.surfaces(s); err != nil {
				return nil, err
			}
		}
		if j.opts.filter != nil {
			j.opts.filter.apply(&f)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// egoPose returns the pose of the key-frame capture of s, or the pose
// recorded at the sample timestamp when no capture is known. The lidar key
// frame wins over other modalities, then the first key frame in file order.
func (j *joiner) egoPose(s schema.Sample) (schema.EgoPose, error) {
	if sd, ok := j.keyFrames[s.Token]; ok {
		ego, ok := j.t.EgoPose.Get(sd.EgoPoseToken)
		if !ok {
			return schema.EgoPose{}, schema.ReferenceError(schema.NameSampleData, sd.Token, "ego_pose_token", sd.EgoPoseToken)
		}
		return ego, nil
	}
	if ego, ok := j.egoByTime[s.Timestamp]; ok {
		return ego, nil
	}
	return schema.EgoPose{}, integrityErrorf(schema.NameSample, s.Token, "timestamp", "no ego pose at timestamp %d", s.Timestamp)
}

func (j *joiner) attributes(table schema.Name, token string, tokens schema.Tokens) ([]schema.Attribute, error) {
	attrs := make([]schema.Attribute, 0, len(tokens))
	for _, tok := range tokens {
		a, ok := j.t.Attribute.Get(tok)
		if !ok {
			return nil, schema.ReferenceError(table, token, "attribute_tokens", tok)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (j *joiner) objects3D(s schema.Sample) ([]Object3D, error) {
	anns := j.annsBySample[s.Token]
	objects := make([]Object3D, 0, len(anns))
	for _, a := range anns {
		inst, ok := j.t.Instance.Get(a.InstanceToken)
		if !ok {
			return nil, schema.ReferenceError(schema.NameSampleAnnotation, a.Token, "instance_token", a.InstanceToken)
		}
		cat, ok := j.t.Category.Get(inst.CategoryToken)
		if !ok {
			return nil, schema.ReferenceError(schema.NameInstance, inst.Token, "category_token", inst.CategoryToken)
		}
		attrs, err := j.attributes(schema.NameSampleAnnotation, a.Token, a.AttributeTokens)
		if err != nil {
			return nil, err
		}

		vis := schema.VisibilityUnavailable
		if a.VisibilityToken != "" {
			v, ok := j.t.Visibility.Get(a.VisibilityToken)
			if !ok {
				return nil, schema.ReferenceError(schema.NameSampleAnnotation, a.Token, "visibility_token", a.VisibilityToken)
			}
			vis = v.Normalized()
		}

		velocity, err := j.velocity(a)
		if err != nil {
			return nil, err
		}

		box := Box3D{
			UnixTime:   s.Timestamp,
			FrameID:    MapFrame,
			Label:      semanticLabel(cat, attrs),
			Position:   a.Translation,
			Rotation:   a.Rotation,
			Size:       a.Size,
			Velocity:   velocity,
			Confidence: 1,
			UUID:       inst.Token,
			NumPoints:  a.NumLidarPts,
			Visibility: vis,
		}
		if j.task == TaskPrediction3D && j.opts.futureSeconds > 0 {
			if box.Future, err = j.future(a, s); err != nil {
				return nil, err
			}
		}

		objects = append(objects, Object3D{
			Annotation: a,
			Instance:   inst,
			Category:   cat,
			Attributes: attrs,
			Visibility: vis,
			Box:        box,
		})
	}
	return objects, nil
}

func (j *joiner) annotationTime(from schema.SampleAnnotation, field, token string) (schema.SampleAnnotation, int64, error) {
	a, ok := j.t.SampleAnnotation.Get(token)
	if !ok {
		return a, 0, schema.ReferenceError(schema.NameSampleAnnotation, from.Token, field, token)
	}
	s, ok := j.t.Sample.Get(a.SampleToken)
	if !ok {
		return a, 0, schema.ReferenceError(schema.NameSampleAnnotation, a.Token, "sample_token", a.SampleToken)
	}
	return a, s.Timestamp, nil
}

// velocity returns the annotated velocity of a, or estimates it from the
// neighbouring annotations of the same instance. The estimate is NaN when a
// has no neighbours or they are too far apart in time.
func (j *joiner) velocity(a schema.SampleAnnotation) (schema.Vector3, error) {
	if a.Velocity != nil {
		return *a.Velocity, nil
	}
	hasPrev, hasNext := a.Prev != "", a.Next != ""
	if !hasPrev && !hasNext {
		return nanVector(), nil
	}

	sample, ok := j.t.Sample.Get(a.SampleToken)
	if !ok {
		return schema.Vector3{}, schema.ReferenceError(schema.NameSampleAnnotation, a.Token, "sample_token", a.SampleToken)
	}
	first, last := a, a
	firstTime, lastTime := sample.Timestamp, sample.Timestamp
	var err error
	if hasPrev {
		if first, firstTime, err = j.annotationTime(a, "prev", a.Prev); err != nil {
			return schema.Vector3{}, err
		}
	}
	if hasNext {
		if last, lastTime, err = j.annotationTime(a, "next", a.Next); err != nil {
			return schema.Vector3{}, err
		}
	}

	maxDiff := maxVelocityTimeDiff
	if hasPrev && hasNext {
		maxDiff *= 2
	}
	dt := float64(lastTime-firstTime) * 1e-6
	if dt <= 0 || dt > maxDiff {
		return nanVector(), nil
	}
	return scale(sub(last.Translation, first.Translation), 1/dt), nil
}

// future collects the positions of the instance of a in the following
// samples, up to the configured horizon.
func (j *joiner) future(a schema.SampleAnnotation, s schema.Sample) (*Trajectory, error) {
	traj := &Trajectory{}
	cur := a
	for steps := 0; cur.Next != "" && steps < j.t.SampleAnnotation.Len(); steps++ {
		next, ts, err := j.annotationTime(cur, "next", cur.Next)
		if err != nil {
			return nil, err
		}
		if float64(ts-s.Timestamp)*1e-6 > j.opts.futureSeconds {
			break
		}
		traj.Timestamps = append(traj.Timestamps, ts)
		traj.Waypoints = append(traj.Waypoints, next.Translation)
		cur = next
	}
	if traj.Len() == 0 {
		return nil, nil
	}
	return traj, nil
}

// sensorOf returns the sensor that captured sd.
func (j *joiner) sensorOf(sd schema.SampleData) (schema.Sensor, error) {
	cs, ok := j.t.CalibratedSensor.Get(sd.CalibratedSensorToken)
	if !ok {
		return schema.Sensor{}, schema.ReferenceError(schema.NameSampleData, sd.Token, "calibrated_sensor_token", sd.CalibratedSensorToken)
	}
	sensor, ok := j.t.Sensor.Get(cs.SensorToken)
	if !ok {
		return schema.Sensor{}, schema.ReferenceError(schema.NameCalibratedSensor, cs.Token, "sensor_token", cs.SensorToken)
	}
	return sensor, nil
}

func (j *joiner) objects2D(s schema.Sample) ([]Object2D, error) {
	anns := j.objectsBySample[s.Token]
	objects := make([]Object2D, 0, len(anns))
	for _, o := range anns {
		sd, _ := j.t.SampleData.Get(o.SampleDataToken)
		sensor, err := j.sensorOf(sd)
		if err != nil {
			return nil, err
		}

		var inst schema.Instance
		if o.InstanceToken != "" {
			var ok bool
			if inst, ok = j.t.Instance.Get(o.InstanceToken); !ok {
				return nil, schema.ReferenceError(schema.NameObjectAnn, o.Token, "instance_token", o.InstanceToken)
			}
		}
		cat, ok := j.t.Category.Get(o.CategoryToken)
		if !ok {
			return nil, schema.ReferenceError(schema.NameObjectAnn, o.Token, "category_token", o.CategoryToken)
		}
		attrs, err := j.attributes(schema.NameObjectAnn, o.Token, o.AttributeTokens)
		if err != nil {
			return nil, err
		}

		objects = append(objects, Object2D{
			Annotation: o,
			SampleData: sd,
			Sensor:     sensor,
			Instance:   inst,
			Category:   cat,
			Attributes: attrs,
			Box: Box2D{
				UnixTime:   sd.Timestamp,
				FrameID:    sensor.Channel,
				Label:      semanticLabel(cat, attrs),
				Roi:        o.Bbox,
				Confidence: 1,
				UUID:       inst.Token,
			},
		})
	}
	return objects, nil
}

func (j *joiner) surfaces(s schema.Sample) ([]Surface, error) {
	anns := j.surfacesBySample[s.Token]
	surfaces := make([]Surface, 0, len(anns))
	for _, a := range anns {
		sd, _ := j.t.SampleData.Get(a.SampleDataToken)
		sensor, err := j.sensorOf(sd)
		if err != nil {
			return nil, err
		}
		cat, ok := j.t.Category.Get(a.CategoryToken)
		if !ok {
			return nil, schema.ReferenceError(schema.NameSurfaceAnn, a.Token, "category_token", a.CategoryToken)
		}
		if inst := a.Instance(); inst != "" && !j.t.Instance.Has(inst) {
			return nil, schema.ReferenceError(schema.NameSurfaceAnn, a.Token, "instance_token", inst)
		}
		surfaces = append(surfaces, Surface{
			Annotation: a,
			SampleData: sd,
			Category:   cat,
			FrameID:    sensor.Channel,
			Label:      semanticLabel(cat, nil),
		})
	}
	return surfaces, nil
}
