package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSchemaValidation     = errors.New("schema validation failed")
	ErrDuplicateToken       = errors.New("duplicate token")
	ErrReferentialIntegrity = errors.New("referential integrity violated")
	ErrIO                   = errors.New("i/o failure")
)

// Error locates a failure inside the dataset: the table, the element index in
// the table file, the record token and the offending field. Unset locations
// are left out of the message. Index is -1 when it does not apply.
type Error struct {
	Kind  error
	Table Name
	Index int
	Token string
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	var loc []string
	if e.Table != "" {
		loc = append(loc, "table="+string(e.Table))
	}
	if e.Index >= 0 {
		loc = append(loc, fmt.Sprintf("index=%d", e.Index))
	}
	if e.Token != "" {
		loc = append(loc, fmt.Sprintf("token=%q", e.Token))
	}
	if e.Field != "" {
		loc = append(loc, "field="+e.Field)
	}
	if len(loc) > 0 {
		b.WriteString(" (" + strings.Join(loc, " ") + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel kind and the underlying cause, so that
// errors.Is works for ErrIO as well as for fs.ErrNotExist.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationErrorf(field, format string, args ...any) *Error {
	return &Error{Kind: ErrSchemaValidation, Index: -1, Field: field, Err: fmt.Errorf(format, args...)}
}

// ReferenceError reports that field of the record token in table points at
// target, which does not exist in the referenced table.
func ReferenceError(table Name, token, field, target string) error {
	return &Error{
		Kind:  ErrReferentialIntegrity,
		Table: table,
		Index: -1,
		Token: token,
		Field: field,
		Err:   fmt.Errorf("unresolved token %q", target),
	}
}

// locate attaches table coordinates to an error produced while decoding one
// element of a table file.
func locate(err error, table Name, index int, token string) error {
	if se, ok := err.(*Error); ok {
		cp := *se
		cp.Table = table
		cp.Index = index
		if cp.Token == "" {
			cp.Token = token
		}
		return &cp
	}
	return &Error{Kind: ErrSchemaValidation, Table: table, Index: index, Token: token, Err: err}
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return errors.Join(errs...)
}
