// Package document defines the bulletin document model: master records,
// immutable versions, and the content tree each version holds.
//
// # Kinds
//
// Three kinds of documents share the model:
//   - template: a reusable layout that bulletins are instantiated from
//   - bulletin: a published agro-climatic report
//   - card: a small standalone document (a single climate indicator, a notice)
//
// # Content tree
//
//	Content
//	├── style_config          global style
//	├── header_config         Container (style + fields)
//	├── footer_config         Container (style + fields)
//	└── sections[]
//	    ├── style_config      section style
//	    └── blocks[]          Container (style + fields)
//
// Fields are the leaves. Each field carries a typed configuration (a
// [FieldConfig] variant selected by the field type), an optional style, and
// the style_manually_edited flag that decides whether container style changes
// reach it. The inheritance rules themselves live in package inherit.
//
// # Serialization
//
// JSON is the canonical wire format:
//
//	{
//	  "field_id": "rain",
//	  "label": "Rainfall",
//	  "type": "climate",
//	  "field_config": {"variable": "precipitation", "unit": "mm"},
//	  "style_config": {"primary_color": "#1f77b4"},
//	  "style_manually_edited": false
//	}
//
// YAML uses the same keys, and msgpack is supported for compact snapshots.
package document
