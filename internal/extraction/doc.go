// Package extraction recovers Contact and Deal records from pasted listing text.
//
// Pasted pages carry no structure beyond line order, so extraction relies on
// anchors: literal lines that reliably close every record of a layout
// ("Message", "Connected on <date>", "No longer accepting applications").
// From each anchor the recoverer looks a few lines back, trying the layout's
// offset templates in order until one passes its structural check.
//
// The stages run in a Pipeline:
//
//   - NoiseFilter: drops navigation chrome, keeps the layout's anchors
//   - AnchorScanner: finds anchor lines, or falls back to fixed-stride groups
//   - Recoverer: applies offset templates to each anchor
//   - Normaliser: derives company and contact type, truncates fields
//
// Every layout variant is a domain.LayoutProfile value; see Builtins.
package extraction
