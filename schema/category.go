package schema

import "errors"

// Category is a record of category.json: an object or surface class.
type Category struct {
	Token       string `json:"token"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Index is the label id. Older dataset revisions leave it unset.
	Index *int `json:"index,omitempty"`
}

func (Category) Table() Name { return NameCategory }

func (c Category) GetToken() string { return c.Token }

func (c Category) Validate() error {
	var idx error
	if c.Index != nil && *c.Index < 0 {
		idx = validationErrorf("index", "must be >= 0, got %d", *c.Index)
	}
	return collect(nonEmpty("token", c.Token), idx)
}

// FixCategoryIndex fills unset Index fields from list positions. Categories
// are returned unchanged if every index is set; if only some are set the
// table is inconsistent and an error is returned.
func FixCategoryIndex(categories []Category) ([]Category, error) {
	unset := 0
	for _, c := range categories {
		if c.Index == nil {
			unset++
		}
	}
	if unset == 0 {
		return categories, nil
	}
	if unset != len(categories) {
		return nil, errors.New("category index is set for some categories but not for others")
	}

	fixed := make([]Category, len(categories))
	for i, c := range categories {
		idx := i
		c.Index = &idx
		fixed[i] = c
	}
	return fixed, nil
}
