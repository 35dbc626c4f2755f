package utils

import (
	"reflect"
)

var (
	ColumnTag = "db"
	FormTag   = "form"
	JSONTag   = "json"
)

// StructTagValues returns the values of tag on the exported fields of input,
// in declaration order. Fields tagged "-" or untagged are skipped.
func StructTagValues(input any, tag string) []string {

	targetValue := structValue(input)
	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())

	for i := 0; i < targetValue.NumField(); i++ {

		if targetType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := targetType.Field(i).Tag.Get(tag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, tagValue)

	}

	return result

}

// StructToMap maps column names to field values using ColumnTag.
// Columns listed in omit are left out.
func StructToMap(input any, omit ...string) map[string]any {

	result := make(map[string]any)

	itemValue := structValue(input)
	itemType := itemValue.Type()

fieldloop:
	for i := 0; i < itemValue.NumField(); i++ {

		if itemType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := itemType.Field(i).Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		for _, o := range omit {
			if o == tagValue {
				continue fieldloop
			}
		}

		result[tagValue] = itemValue.Field(i).Interface()

	}

	return result

}

func structValue(input any) reflect.Value {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return v
}
