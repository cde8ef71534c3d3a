package db

import _ "embed"

// DefaultFormulas is the built-in formula catalog in YAML.
//
//go:embed seeds/formulas.yaml
var DefaultFormulas []byte
