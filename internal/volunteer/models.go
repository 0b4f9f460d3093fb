package volunteer

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names shared by the store, the query builder and the handlers.
const (
	FieldID             = "_id"
	FieldTitle          = "title"
	FieldCategory       = "category"
	FieldDeadline       = "deadline"
	FieldOwnerEmail     = "ownerEmail"
	FieldApplicantEmail = "applicantEmail"
)

// Document is a schema-less record. Opportunities and applications carry a
// handful of required fields plus any extra key/value pairs supplied by the
// client, which are stored and returned verbatim.
type Document map[string]interface{}

// ID returns the hex form of the document's _id, or "" when absent.
func (d Document) ID() string {
	switch v := d[FieldID].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// String returns a top-level or dotted-path string field, "" when missing or not a string.
func (d Document) String(path string) string {
	v, ok := d.Lookup(path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Lookup resolves a dotted path ("buyer.email") through nested documents.
func (d Document) Lookup(path string) (interface{}, bool) {
	var cur interface{} = map[string]interface{}(d)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func (d Document) Title() string    { return d.String(FieldTitle) }
func (d Document) Category() string { return d.String(FieldCategory) }

// Clone returns a deep copy of nested documents and arrays.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneValue(map[string]interface{}(d)).(Document)
}

// WithoutID returns a copy of d with _id removed, used for full-document replacement.
func (d Document) WithoutID() Document {
	if d == nil {
		return Document{}
	}
	out := d.Clone()
	delete(out, FieldID)
	return out
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Document:
		return m, true
	case primitive.M:
		return m, true
	}
	return nil, false
}

func cloneValue(v interface{}) interface{} {
	if m, ok := asMap(v); ok {
		out := make(Document, len(m))
		for k, vv := range m {
			out[k] = cloneValue(vv)
		}
		return out
	}
	switch s := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(s))
		for i, vv := range s {
			out[i] = cloneValue(vv)
		}
		return out
	case primitive.A:
		out := make(primitive.A, len(s))
		for i, vv := range s {
			out[i] = cloneValue(vv)
		}
		return out
	}
	return v
}

// ValidateOpportunity checks the fields every opportunity must carry at creation.
func ValidateOpportunity(d Document) error {
	return requireStrings(d, FieldTitle, FieldCategory, FieldDeadline, FieldOwnerEmail)
}

// ValidateApplication checks the fields every application must carry at creation.
func ValidateApplication(d Document) error {
	return requireStrings(d, FieldApplicantEmail)
}

func requireStrings(d Document, fields ...string) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(d.String(f)) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidDocument, strings.Join(missing, ", "))
	}
	return nil
}

// ParseID converts a path id into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
