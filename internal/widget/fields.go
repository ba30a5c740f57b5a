// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package widget

// Field identifiers on the edit form. These mirror the form's input IDs;
// which of them a widget reads depends on its content kind.
const (
	FieldName        = "id_name"
	FieldDescription = "id_description"
	FieldTitle       = "id_title"
	FieldContent     = "id_content"

	FieldMetaTitle       = "id_meta_title"
	FieldMetaDescription = "id_meta_description"
)

// Fields abstracts access to the form's input fields so the widget never
// reaches into a page directly. Value reports ok=false when the field does
// not exist; SetValue reports whether the field existed and was written.
type Fields interface {
	Value(id string) (value string, ok bool)
	SetValue(id, value string) bool
}

// FieldMap is an in-memory Fields implementation. Only identifiers present
// as keys exist; setting an absent identifier is a silent no-op, matching
// how missing target fields are skipped on a real form.
type FieldMap map[string]string

// Value returns the field's current value and whether the field exists.
func (m FieldMap) Value(id string) (string, bool) {
	v, ok := m[id]
	return v, ok
}

// SetValue overwrites an existing field. Returns false if the field is
// absent, in which case nothing is written.
func (m FieldMap) SetValue(id, value string) bool {
	if _, ok := m[id]; !ok {
		return false
	}
	m[id] = value
	return true
}
