// Package block models the composable layout payloads accepted by the
// Chatter API: elements, blocks and views.
//
// Every kind is constructed through a staged builder (or a plain
// constructor when all fields are required). Builders are immutable
// values: each chained call returns a new builder, so a partially
// configured builder can be reused as a template for several finished
// variants. All structural validation happens exactly once, at Build,
// which returns either a finished value or a *ValidationError naming the
// offending field and constraint. Cosmetic call order never matters; only
// the final field combination is validated.
//
//	btn, err := block.Button("Approve", "approve").
//	    Style(block.StylePrimary).
//	    Value("req-42").
//	    Build()
//
// Serialization uses a "type" discriminant per kind. Decoding dispatches
// on that discriminant and rejects unknown kinds with *UnknownVariantError
// rather than coercing to a fallback; decode(encode(x)) == x holds for
// every valid value.
package block
