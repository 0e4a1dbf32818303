package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pthm-cable/flock/vmath"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetCount
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// progresser is satisfied by timers.
type progresser interface {
	Fraction() float32
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"bar,max:200"`
//	`inspect:"count"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "bool":
		widget = WidgetBool
	case "count":
		widget = WidgetCount
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to list the exported fields of a component.
// Timers are reported as bars of their elapsed fraction.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() || sf.Anonymous {
			if sf.Anonymous && fv.CanInterface() {
				// Embedded values such as Position's Vec2 show as one row.
				fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Widget: WidgetLabel, Options: map[string]string{}})
			}
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}

		value := fv.Interface()
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}
		if widget == WidgetBar {
			if p, ok := asProgresser(fv); ok {
				value = p.Fraction()
			}
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   value,
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// asProgresser checks the addressable form of v, since Fraction has a
// pointer receiver.
func asProgresser(v reflect.Value) (progresser, bool) {
	if p, ok := v.Interface().(progresser); ok {
		return p, true
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	p, ok := ptr.Interface().(progresser)
	return p, ok
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	if _, ok := asProgresser(v); ok {
		return WidgetBar
	}
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Slice, reflect.Array, reflect.Map:
		return WidgetCount
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32:
		return fmt.Sprintf("%.2f", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case vmath.Vec2:
		return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return strconv.Itoa(rv.Len())
	}
	return fmt.Sprintf("%v", value)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if maxStr, ok := options["max"]; ok {
		if m, err := strconv.ParseFloat(maxStr, 32); err == nil {
			return float32(m)
		}
	}
	return 1.0
}

// GetFloatValue extracts a float32 from numeric values.
func GetFloatValue(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint32:
		return float32(v), true
	default:
		return 0, false
	}
}
