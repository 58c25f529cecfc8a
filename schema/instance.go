package schema

// Instance is a record of instance.json: one tracked object. Its annotations
// form a linked list through SampleAnnotation.Prev/Next that starts at
// FirstAnnotationToken and ends at LastAnnotationToken. Both are empty when
// the dataset holds only 2D annotations.
type Instance struct {
	Token                string `json:"token"`
	CategoryToken        string `json:"category_token"`
	InstanceName         string `json:"instance_name"`
	NbrAnnotations       int    `json:"nbr_annotations"`
	FirstAnnotationToken string `json:"first_annotation_token"`
	LastAnnotationToken  string `json:"last_annotation_token"`
}

func (Instance) Table() Name { return NameInstance }

func (i Instance) GetToken() string { return i.Token }

func (i Instance) Validate() error {
	var count error
	if i.NbrAnnotations < 0 {
		count = validationErrorf("nbr_annotations", "must be >= 0, got %d", i.NbrAnnotations)
	}
	return collect(
		nonEmpty("token", i.Token),
		nonEmpty("category_token", i.CategoryToken),
		count,
	)
}
