package volunteer

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPageSize = 10
	DefaultPage     = 1
	MaxPageSize     = 100
)

// Filter is a conjunction of constraints over a collection.
// The zero value matches every document.
type Filter struct {
	// TitleContains is a case-insensitive literal substring of the title.
	TitleContains string
	// Equals holds exact-match constraints keyed by (possibly dotted) field path.
	Equals map[string]interface{}
}

// BuildListQuery translates the browse parameters into a Filter: title
// substring search always, category only when non-empty.
func BuildListQuery(search, category string) Filter {
	f := Filter{TitleContains: search}
	if category != "" {
		f.Equals = map[string]interface{}{FieldCategory: category}
	}
	return f
}

// Where returns a copy of f with an additional exact-match constraint.
func (f Filter) Where(field string, value interface{}) Filter {
	eq := make(map[string]interface{}, len(f.Equals)+1)
	for k, v := range f.Equals {
		eq[k] = v
	}
	eq[field] = value
	f.Equals = eq
	return f
}

// BSON renders the filter as a MongoDB query document.
func (f Filter) BSON() bson.M {
	q := bson.M{}
	if f.TitleContains != "" {
		q[FieldTitle] = primitive.Regex{Pattern: regexp.QuoteMeta(f.TitleContains), Options: "i"}
	}
	for k, v := range f.Equals {
		q[k] = v
	}
	return q
}

// Matches evaluates the filter against a document in process.
func (f Filter) Matches(d Document) bool {
	if f.TitleContains != "" {
		if !strings.Contains(strings.ToLower(d.Title()), strings.ToLower(f.TitleContains)) {
			return false
		}
	}
	for k, want := range f.Equals {
		got, ok := d.Lookup(k)
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

func equalValues(a, b interface{}) bool {
	return reflect.DeepEqual(cloneValue(a), cloneValue(b))
}

// FilterFromQuery builds an exact-match Filter from a client supplied
// key/value object. Nested objects are flattened into dotted-path
// constraints, so {"buyer":{"email":"a"}} matches on buyer.email regardless
// of key order or extra fields in the stored document. Keys starting with
// "$" are rejected at any depth so callers cannot inject query operators.
func FilterFromQuery(q map[string]interface{}) (Filter, error) {
	f := Filter{}
	for k, v := range q {
		if err := flattenQuery(&f, "", k, v); err != nil {
			return Filter{}, err
		}
	}
	return f, nil
}

func flattenQuery(f *Filter, prefix, key string, v interface{}) error {
	for _, part := range strings.Split(key, ".") {
		if part == "" || strings.HasPrefix(part, "$") {
			return fmt.Errorf("%w: key %q", ErrInvalidQuery, prefix+key)
		}
	}
	path := prefix + key
	m, ok := asMap(v)
	if !ok || len(m) == 0 {
		*f = f.Where(path, v)
		return nil
	}
	for k, vv := range m {
		if err := flattenQuery(f, path+".", k, vv); err != nil {
			return err
		}
	}
	return nil
}

// Page is a pagination directive.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads 1-based page and page size from raw query values.
// Missing, non-numeric or non-positive values fall back to the defaults.
func ParsePage(page, size string) Page {
	p := Page{Number: DefaultPage, Size: DefaultPageSize}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(size)); err == nil && n > 0 {
		p.Size = n
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Skip saturates at math.MaxInt64 so huge page numbers stay out of range
// instead of wrapping negative.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	n, size := int64(p.Number-1), int64(p.Size)
	if n > math.MaxInt64/size {
		return math.MaxInt64
	}
	return n * size
}


func (p Page) Limit() int64 { return int64(p.Size) }

// Sort orders results by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// FindOptions bundles sort and pagination for list queries.
// A zero Limit means no limit.
type FindOptions struct {
	Sort  *Sort
	Skip  int64
	Limit int64
}

// Paginate returns options covering the given page.
func Paginate(p Page) FindOptions {
	return FindOptions{Skip: p.Skip(), Limit: p.Limit()}
}

// ByDeadlineDesc is the default ordering of the opportunity listing.
var ByDeadlineDesc = &Sort{Field: FieldDeadline, Desc: true}
