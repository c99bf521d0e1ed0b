package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeFormat is the layout used for created_at and updated_at in the dictionary form of an entity.
const TimeFormat = "2006-01-02T15:04:05.000000"

// ClassKey is the dictionary key carrying the entity class name.
const ClassKey = "__class__"

var (
	// ErrInvalidAttribute is returned when an attribute value cannot be applied to an entity.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrUnknownClass is returned when a factory is asked for a class it does not know.
	ErrUnknownClass = errors.New("unknown entity class")
)

// Attrs carries named attribute overrides into an initializer.
type Attrs map[string]any

// Entity is implemented by every record handled by a storage engine.
type Entity interface {
	Base() *BaseModel
	ClassName() string
	ToMap() map[string]any
}

// BaseModel holds the identity and timestamps shared by all entities.
type BaseModel struct {
	ID        string    `json:"id" db:"id"`                 // UUIDv4 assigned at construction
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Construction time
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last save time
}

// Base returns the embedded base model.
func (b *BaseModel) Base() *BaseModel {
	return b
}

// Touch moves updated_at forward to now.
func (b *BaseModel) Touch(now time.Time) {
	b.UpdatedAt = now
}

func (b *BaseModel) baseMap(className string) map[string]any {
	return map[string]any{
		ClassKey:     className,
		"id":         b.ID,
		"created_at": b.CreatedAt.Format(TimeFormat),
		"updated_at": b.UpdatedAt.Format(TimeFormat),
	}
}

// Initializer runs the shared construction routine for an entity.
type Initializer interface {
	Init(entity Entity, args ...any) error
}

// InitializerFunc adapts a function to the Initializer interface.
type InitializerFunc func(entity Entity, args ...any) error

// Init calls f(entity, args...).
func (f InitializerFunc) Init(entity Entity, args ...any) error {
	return f(entity, args...)
}

// DefaultInitializer assigns identity and timestamps, then applies attribute maps found among args.
type DefaultInitializer struct {
	Now   func() time.Time
	NewID func() string
}

// NewDefaultInitializer returns an initializer backed by the wall clock and random UUIDs.
func NewDefaultInitializer() *DefaultInitializer {
	return &DefaultInitializer{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// Init implements Initializer. Arguments that are not attribute maps are ignored.
func (d *DefaultInitializer) Init(entity Entity, args ...any) error {
	now := d.Now()

	base := entity.Base()
	base.ID = d.NewID()
	base.CreatedAt = now
	base.UpdatedAt = now

	for _, arg := range args {
		switch attrs := arg.(type) {
		case Attrs:
			if err := Hydrate(entity, attrs); err != nil {
				return err
			}
		case map[string]any:
			if err := Hydrate(entity, attrs); err != nil {
				return err
			}
		}
	}
	return nil
}

// Hydrate sets the entity attributes named in attrs. Unknown keys, including
// the class key, are skipped and attrs is left untouched.
func Hydrate(entity Entity, attrs map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToTimeHook,
			toDecimalHook,
		),
		WeaklyTypedInput: true,
		Squash:           true,
		TagName:          "json",
		Result:           entity,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(attrs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}
	return nil
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()
	if t, err := time.Parse(TimeFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func toDecimalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case nil:
		return decimal.Zero, nil
	}
	return nil, fmt.Errorf("cannot convert %T to decimal", data)
}
