package tui

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// AutoForm generates a huh.Form from a struct pointer using reflection.
// It parses the `tui:"..."` tag to configure field properties. Properties
// are separated by semicolons so descriptions may contain commas.
//
// Recognized properties: group, title, desc, placeholder, validate,
// type (text, secret), limit, options.
func AutoForm(v any) (*huh.Form, error) {
	groups, err := collectGroups(v)
	if err != nil {
		return nil, err
	}

	hg := make([]*huh.Group, 0, len(groups))
	for _, g := range groups {
		group := huh.NewGroup(g.Fields...)
		if g.Title != "" {
			group = group.Title(g.Title)
		}
		hg = append(hg, group)
	}

	return huh.NewForm(hg...).WithTheme(huh.ThemeBase16()), nil
}

type formGroup struct {
	Title  string
	Keys   []string
	Fields []huh.Field
}

// collectGroups walks the tagged fields in declaration order and buckets
// them by group, keeping the order in which each group first appears.
func collectGroups(v any) ([]formGroup, error) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("AutoForm requires a pointer to a struct, got %T", v)
	}

	el := val.Elem()
	t := el.Type()
	var groups []formGroup
	index := map[string]int{}

	for i := 0; i < el.NumField(); i++ {
		field := el.Field(i)
		fieldType := t.Field(i)
		tag := fieldType.Tag.Get("tui")

		// Skip fields without the 'tui' tag
		if tag == "" {
			continue
		}

		props := parseTag(tag)

		f, err := buildField(field, fieldType, props)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}

		name := props["group"]
		gi, ok := index[name]
		if !ok {
			gi = len(groups)
			index[name] = gi
			groups = append(groups, formGroup{Title: name})
		}
		groups[gi].Keys = append(groups[gi].Keys, fieldType.Name)
		groups[gi].Fields = append(groups[gi].Fields, f)
	}

	return groups, nil
}

func buildField(field reflect.Value, fieldType reflect.StructField, props map[string]string) (huh.Field, error) {
	title := props["title"]
	if title == "" {
		title = fieldType.Name
	}
	desc := props["desc"]

	var validator func(string) error
	if vKey, ok := props["validate"]; ok {
		fn, exists := Validators[vKey]
		if !exists {
			return nil, fmt.Errorf("field %s: unknown validator %q", fieldType.Name, vKey)
		}
		validator = fn
	}

	limit := 0
	if s, ok := props["limit"]; ok {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("field %s: invalid limit %q", fieldType.Name, s)
		}
		limit = n
	}

	switch field.Kind() {
	case reflect.String:
		ptr := field.Addr().Interface().(*string)

		// If "options" are present, make it a Select
		if optsStr, ok := props["options"]; ok {
			var selectOpts []huh.Option[string]
			for _, o := range strings.Split(optsStr, ",") {
				// Format: "Label:Value" or just "Value"
				key, value, found := strings.Cut(o, ":")
				if !found {
					value = key
				}
				selectOpts = append(selectOpts, huh.NewOption(strings.TrimSpace(key), strings.TrimSpace(value)))
			}
			return huh.NewSelect[string]().
				Title(title).
				Description(desc).
				Options(selectOpts...).
				Value(ptr), nil
		}

		if props["type"] == "text" {
			text := huh.NewText().
				Title(title).
				Description(desc).
				Placeholder(props["placeholder"]).
				Lines(4).
				Value(ptr)
			if limit > 0 {
				text.CharLimit(limit)
			}
			if validator != nil {
				text.Validate(validator)
			}
			return text, nil
		}

		input := huh.NewInput().
			Title(title).
			Description(desc).
			Placeholder(props["placeholder"]).
			Value(ptr)

		if props["type"] == "secret" {
			input.EchoMode(huh.EchoModePassword)
		}
		if limit > 0 {
			input.CharLimit(limit)
		}
		if validator != nil {
			input.Validate(validator)
		}
		return input, nil

	case reflect.Bool:
		return huh.NewConfirm().
			Title(title).
			Description(desc).
			Value(field.Addr().Interface().(*bool)), nil
	}

	return nil, nil
}

// Helper to parse "key=val;key2=val2"
func parseTag(tag string) map[string]string {
	res := make(map[string]string)
	for _, part := range strings.Split(tag, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			res[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return res
}

// Validator Registry
var Validators = map[string]func(string) error{
	"required": func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("this field is required")
		}
		return nil
	},
}
