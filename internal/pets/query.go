package pets

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"gorm.io/gorm"
)

// Search query parameter names.
const (
	ParamType           = "type"
	ParamBreed          = "breed"
	ParamSize           = "size"
	ParamLocation       = "location"
	ParamColor          = "color"
	ParamNature         = "nature"
	ParamVaccinated     = "vaccinated"
	ParamSpayedNeutered = "spayedNeutered"
	ParamIsForSale      = "isForSale"
	ParamMinAge         = "minAge"
	ParamMaxAge         = "maxAge"
	ParamMinPrice       = "minPrice"
	ParamMaxPrice       = "maxPrice"
	ParamQuery          = "q"
	ParamSort           = "sort"
)

// SearchParams is the typed form of the pet search query string.
// Nil pointers and empty strings mean the filter was not supplied.
type SearchParams struct {
	Types          []enums.PetType
	Size           *enums.PetSize
	Breed          string
	Location       string
	Color          string
	Nature         string
	Vaccinated     *bool
	SpayedNeutered *bool
	IsForSale      *bool
	MinAge         *float64
	MaxAge         *float64
	MinPrice       *float64
	MaxPrice       *float64
	Query          string
	Sort           enums.PetSort
}

// ParseSearchParams validates the raw query string. Malformed enum or numeric
// values are rejected with field-level details instead of being ignored.
func ParseSearchParams(values url.Values) (SearchParams, error) {
	params := SearchParams{Sort: enums.ParsePetSortOrDefault(get(values, ParamSort))}
	invalid := map[string]string{}

	if raw := get(values, ParamType); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			petType, err := enums.ParsePetType(part)
			if err != nil {
				invalid[ParamType] = fmt.Sprintf("unsupported value %q", part)
				break
			}
			params.Types = append(params.Types, petType)
		}
	}
	if raw := get(values, ParamSize); raw != "" {
		size, err := enums.ParsePetSize(raw)
		if err != nil {
			invalid[ParamSize] = fmt.Sprintf("unsupported value %q", raw)
		} else {
			params.Size = &size
		}
	}

	params.Breed = get(values, ParamBreed)
	params.Location = get(values, ParamLocation)
	params.Color = get(values, ParamColor)
	params.Nature = get(values, ParamNature)
	params.Query = get(values, ParamQuery)

	params.Vaccinated = parseFlag(values, ParamVaccinated)
	params.SpayedNeutered = parseFlag(values, ParamSpayedNeutered)
	params.IsForSale = parseFlag(values, ParamIsForSale)

	bounds := []struct {
		key  string
		dest **float64
	}{
		{ParamMinAge, &params.MinAge},
		{ParamMaxAge, &params.MaxAge},
		{ParamMinPrice, &params.MinPrice},
		{ParamMaxPrice, &params.MaxPrice},
	}
	for _, bound := range bounds {
		value, err := parseBound(values, bound.key)
		if err != nil {
			invalid[bound.key] = "must be a number"
			continue
		}
		*bound.dest = value
	}

	if len(invalid) > 0 {
		return SearchParams{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid search parameters").WithDetails(invalid)
	}
	return params, nil
}

func get(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// parseFlag treats "true" as true and any other supplied value as false.
func parseFlag(values url.Values, key string) *bool {
	raw := get(values, key)
	if raw == "" {
		return nil
	}
	flag := raw == "true"
	return &flag
}

func parseBound(values url.Values, key string) (*float64, error) {
	raw := get(values, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%s is not finite", key)
	}
	return &value, nil
}

// Op is a filter operator understood by both the SQL translation and Matches.
type Op string

const (
	OpEq          Op = "eq"
	OpIn          Op = "in"
	OpContainsAny Op = "contains"
	OpGte         Op = "gte"
	OpLte         Op = "lte"
)

// Condition is a single predicate over one or more pet columns. OpContainsAny
// matches when any of its fields contains Value; every other op uses Fields[0].
type Condition struct {
	Op     Op
	Fields []string
	Value  any
}

// Query is the conjunction of its conditions plus the requested ordering.
type Query struct {
	Conditions []Condition
	Sort       enums.PetSort
}

// BuildQuery turns validated params into a filter. Listing is always
// restricted to available pets.
func BuildQuery(params SearchParams) Query {
	q := Query{Sort: params.Sort}
	if !q.Sort.IsValid() {
		q.Sort = enums.PetSortNewest
	}

	q.add(OpEq, enums.PetStatusAvailable, colStatus)

	switch len(params.Types) {
	case 0:
	case 1:
		q.add(OpEq, params.Types[0], colType)
	default:
		q.add(OpIn, params.Types, colType)
	}
	if params.Size != nil {
		q.add(OpEq, *params.Size, colSize)
	}

	substrings := []struct {
		column string
		value  string
	}{
		{colBreed, params.Breed},
		{colLocation, params.Location},
		{colColor, params.Color},
		{colNature, params.Nature},
	}
	for _, s := range substrings {
		if s.value != "" {
			q.add(OpContainsAny, s.value, s.column)
		}
	}

	if params.Vaccinated != nil {
		q.add(OpEq, *params.Vaccinated, colVaccinated)
	}
	if params.SpayedNeutered != nil {
		q.add(OpEq, *params.SpayedNeutered, colSpayedNeutered)
	}
	if params.IsForSale != nil {
		q.add(OpEq, *params.IsForSale, colIsForSale)
	}

	if params.MinAge != nil {
		q.add(OpGte, *params.MinAge, colAge)
	}
	if params.MaxAge != nil {
		q.add(OpLte, *params.MaxAge, colAge)
	}
	if params.MinPrice != nil {
		q.add(OpGte, *params.MinPrice, colPrice)
	}
	if params.MaxPrice != nil {
		q.add(OpLte, *params.MaxPrice, colPrice)
	}

	if params.Query != "" {
		q.add(OpContainsAny, params.Query, colName, colBreed)
	}
	return q
}

func (q *Query) add(op Op, value any, fields ...string) {
	q.Conditions = append(q.Conditions, Condition{Op: op, Fields: fields, Value: value})
}

// Apply adds the conditions and ordering to a gorm statement over the pets table.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	for _, cond := range q.Conditions {
		db = cond.apply(db)
	}
	for _, order := range orderClauses(q.Sort) {
		db = db.Order(order)
	}
	return db
}

func (c Condition) apply(db *gorm.DB) *gorm.DB {
	switch c.Op {
	case OpEq:
		return db.Where(c.Fields[0]+" = ?", c.Value)
	case OpIn:
		return db.Where(c.Fields[0]+" IN ?", c.Value)
	case OpGte:
		return db.Where(c.Fields[0]+" >= ?", c.Value)
	case OpLte:
		return db.Where(c.Fields[0]+" <= ?", c.Value)
	case OpContainsAny:
		pattern := likePattern(fmt.Sprint(c.Value))
		clauses := make([]string, 0, len(c.Fields))
		args := make([]any, 0, len(c.Fields))
		for _, field := range c.Fields {
			clauses = append(clauses, "LOWER("+field+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return db
}

// likePattern lower-cases the needle and escapes LIKE wildcards so the match
// is a literal substring test.
func likePattern(needle string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(needle))
	return "%" + escaped + "%"
}

// orderClauses keeps pets without a price last for both price orders and
// breaks ties on id so paging is stable.
func orderClauses(sort enums.PetSort) []string {
	switch sort {
	case enums.PetSortOldest:
		return []string{"created_at ASC", "id ASC"}
	case enums.PetSortPriceLow:
		return []string{"price IS NULL", "price ASC", "created_at DESC", "id ASC"}
	case enums.PetSortPriceHigh:
		return []string{"price IS NULL", "price DESC", "created_at DESC", "id ASC"}
	case enums.PetSortName:
		return []string{"name ASC", "id ASC"}
	default:
		return []string{"created_at DESC", "id DESC"}
	}
}

// Matches evaluates the query against an in-memory pet using the same
// semantics as the SQL translation. NULL columns never satisfy a condition.
func (q Query) Matches(pet models.Pet) bool {
	for _, cond := range q.Conditions {
		if !cond.matches(pet) {
			return false
		}
	}
	return true
}

func (c Condition) matches(pet models.Pet) bool {
	switch c.Op {
	case OpEq:
		value, ok := column(pet, c.Fields[0])
		return ok && fmt.Sprint(value) == fmt.Sprint(c.Value)
	case OpIn:
		value, ok := column(pet, c.Fields[0])
		if !ok {
			return false
		}
		types, _ := c.Value.([]enums.PetType)
		for _, candidate := range types {
			if fmt.Sprint(value) == candidate.String() {
				return true
			}
		}
		return false
	case OpGte, OpLte:
		value, ok := column(pet, c.Fields[0])
		if !ok {
			return false
		}
		number, isNumber := value.(float64)
		bound, isBound := c.Value.(float64)
		if !isNumber || !isBound {
			return false
		}
		if c.Op == OpGte {
			return number >= bound
		}
		return number <= bound
	case OpContainsAny:
		needle := strings.ToLower(fmt.Sprint(c.Value))
		for _, field := range c.Fields {
			value, ok := column(pet, field)
			if !ok {
				continue
			}
			if text, isText := value.(string); isText && strings.Contains(strings.ToLower(text), needle) {
				return true
			}
		}
		return false
	}
	return false
}

const (
	colStatus         = "status"
	colType           = "type"
	colSize           = "size"
	colName           = "name"
	colBreed          = "breed"
	colLocation       = "location"
	colColor          = "color"
	colNature         = "nature"
	colVaccinated     = "vaccinated"
	colSpayedNeutered = "spayed_neutered"
	colIsForSale      = "is_for_sale"
	colAge            = "age"
	colPrice          = "price"
)

// column reads a filterable column from the pet; ok is false for NULL values.
func column(pet models.Pet, name string) (any, bool) {
	switch name {
	case colStatus:
		return pet.Status.String(), true
	case colType:
		return pet.Type.String(), true
	case colSize:
		return pet.Size.String(), true
	case colName:
		return pet.Name, true
	case colBreed:
		return deref(pet.Breed)
	case colLocation:
		return deref(pet.Location)
	case colColor:
		return deref(pet.Color)
	case colNature:
		return deref(pet.Nature)
	case colVaccinated:
		return pet.Vaccinated, true
	case colSpayedNeutered:
		return pet.SpayedNeutered, true
	case colIsForSale:
		return pet.IsForSale, true
	case colAge:
		if pet.Age == nil {
			return nil, false
		}
		return float64(*pet.Age), true
	case colPrice:
		if pet.Price == nil {
			return nil, false
		}
		return *pet.Price, true
	}
	return nil, false
}

func deref(value *string) (any, bool) {
	if value == nil {
		return nil, false
	}
	return *value, true
}
