package model

// JSON is a free-form object persisted as nested structured data rather than
// flattened into columns (media metadata, widget config, zone settings, ...).
type JSON map[string]any
