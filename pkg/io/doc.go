// Package io reads and writes documents as JSON or YAML files.
//
// # Overview
//
// A [document.Document] bundles a master record with one version's content.
// It is the unit the CLI imports and exports:
//
//	master:
//	  kind: template
//	  name: Monthly agro-climatic bulletin
//	content:
//	  style_config:
//	    primary_color: "#0a4"
//	  header_config:
//	    fields:
//	      - field_id: title
//	        label: Title
//	        type: text
//	  sections: []
//
// The same shape is used in JSON. Field configurations are decoded into the
// typed variant named by "type", so unknown types fail at read time.
//
// # Formats
//
// [FormatFromPath] picks the format from the file extension: .json, .yaml
// and .yml are recognized. [ImportFile] and [ExportFile] use it;
// [Read] and [Write] take the format explicitly.
//
// Besides whole documents, [ReadValue] decodes any value (a style config,
// a list of fields) in either format, which is what the style commands use.
package io
