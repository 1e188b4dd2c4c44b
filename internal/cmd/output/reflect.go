package output

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// convertToTableData attempts to convert structs and struct slices to Data
// using reflection.
func (f *TableFormatter) convertToTableData(data any) *Data {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Len() > 0 && indirect(v.Index(0)).Kind() == reflect.Struct {
			return f.structSliceToTableData(v)
		}
	case reflect.Struct:
		return f.singleStructToTableData(v)
	}
	return nil
}

// structSliceToTableData converts a slice of structs to Data.
func (f *TableFormatter) structSliceToTableData(v reflect.Value) *Data {
	elemType := indirect(v.Index(0)).Type()
	fields := visibleFields(elemType)

	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = headerName(field)
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := indirect(v.Index(i))
		row := make([]string, len(fields))
		for j, field := range fields {
			if elem.IsValid() {
				row[j] = cellValue(elem.FieldByIndex(field.Index))
			}
		}
		rows = append(rows, row)
	}

	return &Data{Headers: headers, Rows: rows}
}

// singleStructToTableData converts a single struct to a key-value table.
func (f *TableFormatter) singleStructToTableData(v reflect.Value) *Data {
	fields := visibleFields(v.Type())
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{headerName(field), cellValue(v.FieldByIndex(field.Index))})
	}
	return &Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func visibleFields(t reflect.Type) []reflect.StructField {
	var out []reflect.StructField
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		if field.Tag.Get("json") == "-" {
			continue
		}
		out = append(out, field)
	}
	return out
}

var titleCaser = cases.Title(language.English)

// headerName title-cases the json tag name, or falls back to the field name.
func headerName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return titleCaser.String(strings.ReplaceAll(tag, "_", " "))
}

func cellValue(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return "-"
	}
	if v.Kind() == reflect.Map {
		if v.Len() == 0 {
			return "-"
		}
		keys := v.MapKeys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%v=%v", k.Interface(), v.MapIndex(k).Interface()))
		}
		sort.Strings(parts)
		return strings.Join(parts, ", ")
	}
	s := fmt.Sprintf("%v", v.Interface())
	if s == "" {
		return "-"
	}
	return s
}

